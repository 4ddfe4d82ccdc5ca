package defaultroleservice

import (
	"context"
	"errors"

	defaultroleevents "github.com/guildstone/rolekeeper-bot/app/events/defaultrole"
	"github.com/guildstone/rolekeeper-bot/internal/discordgw"
	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// ErrMissingUserID rejects assignments without a target user.
var ErrMissingUserID = errors.New("user ID required")

// ErrMissingRoleID rejects assignments without a role.
var ErrMissingRoleID = errors.New("role ID required")

// AssignDefaultRole persists the user→role mapping, then requests an
// immediate grant when the command was invoked inside a guild. The mapping is
// the source of truth; the immediate grant is an optimization, so a grant
// failure still yields a persisted (success) result carrying the failure
// detail.
func (s *DefaultRoleService) AssignDefaultRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) (results.OperationResult, error) {
	operationName := "AssignDefaultRole"

	return s.withTelemetry(ctx, operationName, userID, func(ctx context.Context) (results.OperationResult, error) {
		if userID == 0 {
			return assignFailureResult(guildID, userID, roleID, defaultroleevents.StageStore, ErrMissingUserID), nil
		}
		if roleID == 0 {
			return assignFailureResult(guildID, userID, roleID, defaultroleevents.StageStore, ErrMissingRoleID), nil
		}

		if err := s.repo.Upsert(ctx, userID, roleID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist default role mapping",
				attr.ExtractCorrelationID(ctx),
				attr.String("user_id", userID.String()),
				attr.String("role_id", roleID.String()),
				attr.Error(err),
			)
			s.metrics.RecordAssignmentOutcome(ctx, "store_failed")
			// Fail fast: no grant is attempted without durable state.
			return assignFailureResult(guildID, userID, roleID, defaultroleevents.StageStore, err), nil
		}

		if guildID == 0 {
			// No guild context: nothing to grant now; the mapping takes
			// effect on the next join.
			s.metrics.RecordAssignmentOutcome(ctx, "persisted_and_granted")
			return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
				UserID:  userID,
				RoleID:  roleID,
				Granted: false,
			}), nil
		}

		if err := s.gateway.AssignRole(ctx, guildID, userID, roleID); err != nil {
			s.logger.WarnContext(ctx, "Default role persisted but immediate grant failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("guild_id", guildID.String()),
				attr.String("user_id", userID.String()),
				attr.String("role_id", roleID.String()),
				attr.Error(err),
			)
			s.metrics.RecordAssignmentOutcome(ctx, "persisted_grant_failed")
			return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
				GuildID:    guildID,
				UserID:     userID,
				RoleID:     roleID,
				Granted:    false,
				GrantError: grantErrorDetail(err),
			}), nil
		}

		s.logger.InfoContext(ctx, "Default role assigned",
			attr.ExtractCorrelationID(ctx),
			attr.String("guild_id", guildID.String()),
			attr.String("user_id", userID.String()),
			attr.String("role_id", roleID.String()),
		)
		s.metrics.RecordAssignmentOutcome(ctx, "persisted_and_granted")
		return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
			GuildID: guildID,
			UserID:  userID,
			RoleID:  roleID,
			Granted: true,
		}), nil
	})
}

func assignFailureResult(guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID, stage string, err error) results.OperationResult {
	return results.Failure(&defaultroleevents.AssignmentFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		RoleID:  roleID,
		Stage:   stage,
		Reason:  err.Error(),
	}, err)
}

// grantErrorDetail prefers the gateway's own failure detail over transport
// wrapping so the admin-facing response stays readable.
func grantErrorDetail(err error) string {
	var gwErr *discordgw.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Detail
	}
	return err.Error()
}
