package defaultrolehandlers

import (
	"context"
	"errors"

	defaultroleevents "github.com/guildstone/rolekeeper-bot/app/events/defaultrole"
	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/handlerwrapper"
	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/results"
)

// HandleCommandInvoked dispatches slash-command invocations by name. Every
// invocation gets an in-band response: unknown commands answer with a fixed
// string rather than dropping silently, so the invoking admin always gets
// feedback.
func (h *DefaultRoleHandlers) HandleCommandInvoked(ctx context.Context, payload *discordevents.CommandInvokedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if payload.CommandName != setRoleCommandName {
		h.logger.InfoContext(ctx, "Unrecognized command",
			attr.ExtractCorrelationID(ctx),
			attr.String("command_name", payload.CommandName),
		)
		return []handlerwrapper.Result{
			interactionResponse(payload.InteractionID, respNotImplemented),
		}, nil
	}

	args, err := decodeSetRoleOptions(payload.Options)
	if err != nil {
		h.logger.WarnContext(ctx, "setrole options failed validation",
			attr.ExtractCorrelationID(ctx),
			attr.String("invoker_id", payload.InvokerID.String()),
			attr.Error(err),
		)
		return []handlerwrapper.Result{
			interactionResponse(payload.InteractionID, respAssignFailure),
		}, nil
	}

	result, err := h.service.AssignDefaultRole(ctx, payload.GuildID, args.UserID, args.RoleID)
	if err != nil {
		return nil, err
	}

	out := result.MapToHandlerResults(
		defaultroleevents.AssignmentResultV1,
		defaultroleevents.AssignmentFailedV1,
	)

	return append(out, interactionResponse(payload.InteractionID, assignmentResponse(result))), nil
}

// assignmentResponse maps the service outcome to the admin-facing string.
// A mapping that persisted but whose immediate grant was rejected surfaces
// the gateway detail; the mapping itself stays in place either way.
func assignmentResponse(result results.OperationResult) string {
	if success, ok := result.Success.(*defaultroleevents.AssignmentResultPayloadV1); ok {
		if success.GrantError != "" {
			return respGrantFailurePrefix + success.GrantError
		}
		return respAssignSuccess
	}
	return respAssignFailure
}

func interactionResponse(interactionID, content string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: discordevents.InteractionResponseV1,
		Payload: &discordevents.InteractionResponsePayloadV1{
			InteractionID: interactionID,
			Content:       content,
		},
	}
}
