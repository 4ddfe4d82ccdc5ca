package defaultrolehandlers

import (
	"context"
	"errors"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/handlerwrapper"
	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
)

// HandleMemberJoined reconciles a join event against the stored mapping.
// Join events have no response channel and must never enter a redelivery
// loop: failures are logged by the service and swallowed here, and the grant
// is retried naturally on the member's next join.
func (h *DefaultRoleHandlers) HandleMemberJoined(ctx context.Context, payload *discordevents.MemberJoinedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if _, err := h.service.ReconcileMemberJoin(ctx, payload.GuildID, payload.UserID); err != nil {
		h.logger.ErrorContext(ctx, "Join reconciliation failed unexpectedly",
			attr.ExtractCorrelationID(ctx),
			attr.String("guild_id", payload.GuildID.String()),
			attr.String("user_id", payload.UserID.String()),
			attr.Error(err),
		)
	}
	return nil, nil
}
