package defaultroledb

import (
	"context"

	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// Repository defines the contract for default-role persistence. All methods
// are context-aware for cancellation and timeout propagation.
//
// Error semantics:
//   - ErrNotFound: no mapping exists for the user (Lookup)
//   - Other errors: infrastructure failures (connection, query errors)
//
// The repository never retries; retry policy belongs to callers, and the
// core performs none.
type Repository interface {
	// Upsert writes the mapping, replacing any existing role for the user
	// (last-write-wins, no history).
	Upsert(ctx context.Context, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error

	// Lookup returns the user's current default role, or ErrNotFound.
	Lookup(ctx context.Context, userID sharedtypes.UserID) (sharedtypes.RoleID, error)
}
