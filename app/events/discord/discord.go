// Package discordevents defines the event contracts shared with the Discord
// gateway process. The gateway normalizes interactions and gateway dispatches
// onto these topics; the backend publishes interaction responses back.
package discordevents

import "github.com/guildstone/rolekeeper-bot/internal/sharedtypes"

// Stream and topic names. Topics are versioned independently so payloads can
// evolve without breaking replays.
const (
	StreamName = "discord"

	CommandInvokedV1      = "discord.interaction.command.invoked.v1"
	InteractionResponseV1 = "discord.interaction.response.v1"
	MemberJoinedV1        = "discord.member.joined.v1"
)

// Command option types, mirroring the platform's option type enum for the
// subset the backend consumes.
const (
	OptionTypeUser = "user"
	OptionTypeRole = "role"
)

// CommandOption is one positional argument of a slash-command invocation.
// Value holds the resolved snowflake for user/role options.
type CommandOption struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CommandInvokedPayloadV1 is an admin slash-command invocation. GuildID is
// zero for invocations outside a guild context (DMs).
type CommandInvokedPayloadV1 struct {
	InteractionID string              `json:"interaction_id"`
	GuildID       sharedtypes.GuildID `json:"guild_id,omitempty"`
	InvokerID     sharedtypes.UserID  `json:"invoker_id"`
	CommandName   string              `json:"command_name"`
	Options       []CommandOption     `json:"options,omitempty"`
}

// InteractionResponsePayloadV1 is the message the gateway delivers back to
// the invoking admin.
type InteractionResponsePayloadV1 struct {
	InteractionID string `json:"interaction_id"`
	Content       string `json:"content"`
}

// MemberJoinedPayloadV1 signals that a user joined a guild. Join events have
// no response channel.
type MemberJoinedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
}
