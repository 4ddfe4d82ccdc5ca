package defaultrolehandlers

import (
	"context"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/handlerwrapper"
)

// Handlers defines the contract for defaultrole message handlers.
type Handlers interface {
	HandleCommandInvoked(ctx context.Context, payload *discordevents.CommandInvokedPayloadV1) ([]handlerwrapper.Result, error)
	HandleMemberJoined(ctx context.Context, payload *discordevents.MemberJoinedPayloadV1) ([]handlerwrapper.Result, error)
}
