// Package testutils provides test data generators shared across package
// tests.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// TestDataGenerator provides methods to create test data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Snowflake returns a plausible platform ID. Discord snowflakes embed a
// millisecond timestamp in the high bits, so generated values land in the
// realistic range rather than being small integers.
func (g *TestDataGenerator) Snowflake() sharedtypes.Snowflake {
	millis := g.faker.DateRange(
		time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	).UnixMilli()
	const discordEpochMillis = 1420070400000
	return sharedtypes.Snowflake(uint64(millis-discordEpochMillis)<<22 | uint64(g.faker.Uint16()))
}

// SetRoleInvocation builds a well-formed setrole command payload.
func (g *TestDataGenerator) SetRoleInvocation(userID sharedtypes.UserID, roleID sharedtypes.RoleID) *discordevents.CommandInvokedPayloadV1 {
	return &discordevents.CommandInvokedPayloadV1{
		InteractionID: g.faker.UUID(),
		GuildID:       g.Snowflake(),
		InvokerID:     g.Snowflake(),
		CommandName:   "setrole",
		Options: []discordevents.CommandOption{
			{Name: "user", Type: discordevents.OptionTypeUser, Value: userID.String()},
			{Name: "role", Type: discordevents.OptionTypeRole, Value: roleID.String()},
		},
	}
}

// MemberJoin builds a member-joined payload.
func (g *TestDataGenerator) MemberJoin(guildID sharedtypes.GuildID, userID sharedtypes.UserID) *discordevents.MemberJoinedPayloadV1 {
	return &discordevents.MemberJoinedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
	}
}
