package defaultroleservice

import (
	"context"

	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// Service is the defaultrole module's application surface.
//
// Both operations return a domain OperationResult; a non-nil error means an
// unexpected infrastructure problem (panic, context misuse), while expected
// failures (store unavailable, gateway rejection) come back as Failure
// payloads so handlers can decide between responding and staying silent.
type Service interface {
	// AssignDefaultRole persists the user's default role and, when the
	// invocation happened inside a guild, requests an immediate grant.
	// The grant is best-effort: its failure never rolls back the mapping.
	AssignDefaultRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) (results.OperationResult, error)

	// ReconcileMemberJoin re-grants the stored default role, if any, in
	// the guild the member just joined. A missing mapping is a silent
	// no-op.
	ReconcileMemberJoin(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error)
}
