// Package defaultroleevents defines the defaultrole module's result events.
package defaultroleevents

import "github.com/guildstone/rolekeeper-bot/internal/sharedtypes"

const (
	StreamName = "defaultrole"

	AssignmentResultV1 = "defaultrole.assignment.result.v1"
	AssignmentFailedV1 = "defaultrole.assignment.failed.v1"
)

// Failure stages, so consumers can tell a mapping that never persisted from
// one that persisted but whose immediate grant was rejected.
const (
	StageStore  = "store"
	StageGrant  = "grant"
	StageLookup = "lookup"
)

// AssignmentResultPayloadV1 reports a persisted default-role mapping.
// Granted is false when the invocation had no guild context or the immediate
// grant failed; the mapping is durable either way and the next join event
// retries the grant.
type AssignmentResultPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id,omitempty"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	RoleID  sharedtypes.RoleID  `json:"role_id"`
	Granted bool                `json:"granted"`
	// GrantError carries the gateway detail when Granted is false because
	// of a rejected grant (empty for DM invocations).
	GrantError string `json:"grant_error,omitempty"`
}

// AssignmentFailedPayloadV1 reports an assignment that left no durable state.
type AssignmentFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id,omitempty"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	RoleID  sharedtypes.RoleID  `json:"role_id"`
	Stage   string              `json:"stage"`
	Reason  string              `json:"reason"`
}
