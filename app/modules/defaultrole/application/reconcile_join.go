package defaultroleservice

import (
	"context"
	"errors"

	defaultroleevents "github.com/guildstone/rolekeeper-bot/app/events/defaultrole"
	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// ReconcileMemberJoin looks up the joining member's default role and grants
// it in the guild the join happened in. The common case is no mapping, which
// is a silent no-op. Failures are reported as domain results so the handler
// can log and swallow them: one member's failure must never take down the
// dispatcher or other in-flight joins, and a failed grant here is simply
// retried on the next join.
func (s *DefaultRoleService) ReconcileMemberJoin(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	operationName := "ReconcileMemberJoin"

	return s.withTelemetry(ctx, operationName, userID, func(ctx context.Context) (results.OperationResult, error) {
		roleID, err := s.repo.Lookup(ctx, userID)
		if err != nil {
			if errors.Is(err, defaultroledb.ErrNotFound) {
				s.metrics.RecordJoinReconciliation(ctx, "no_mapping")
				return results.OperationResult{}, nil
			}
			s.logger.ErrorContext(ctx, "Failed to look up default role on join",
				attr.ExtractCorrelationID(ctx),
				attr.String("guild_id", guildID.String()),
				attr.String("user_id", userID.String()),
				attr.Error(err),
			)
			s.metrics.RecordJoinReconciliation(ctx, "lookup_failed")
			return reconcileFailureResult(guildID, userID, 0, defaultroleevents.StageLookup, err), nil
		}

		if err := s.gateway.AssignRole(ctx, guildID, userID, roleID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to re-grant default role on join",
				attr.ExtractCorrelationID(ctx),
				attr.String("guild_id", guildID.String()),
				attr.String("user_id", userID.String()),
				attr.String("role_id", roleID.String()),
				attr.Error(err),
			)
			s.metrics.RecordJoinReconciliation(ctx, "grant_failed")
			return reconcileFailureResult(guildID, userID, roleID, defaultroleevents.StageGrant, err), nil
		}

		s.logger.InfoContext(ctx, "Default role re-granted on join",
			attr.ExtractCorrelationID(ctx),
			attr.String("guild_id", guildID.String()),
			attr.String("user_id", userID.String()),
			attr.String("role_id", roleID.String()),
		)
		s.metrics.RecordJoinReconciliation(ctx, "granted")
		return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
			GuildID: guildID,
			UserID:  userID,
			RoleID:  roleID,
			Granted: true,
		}), nil
	})
}

func reconcileFailureResult(guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID, stage string, err error) results.OperationResult {
	return results.Failure(&defaultroleevents.AssignmentFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		RoleID:  roleID,
		Stage:   stage,
		Reason:  err.Error(),
	}, err)
}
