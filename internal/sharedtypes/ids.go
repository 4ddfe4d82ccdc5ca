// Package sharedtypes holds the ID types shared across modules.
package sharedtypes

import (
	"fmt"
	"strconv"
)

// Snowflake is a platform-global 64-bit identifier. Discord snowflakes are
// unsigned and can exceed the signed 64-bit range, so the value is kept as a
// uint64 end to end and crosses JSON boundaries as a decimal string.
type Snowflake uint64

// ParseSnowflake parses the decimal string form of a snowflake.
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", s, err)
	}
	return Snowflake(v), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, s.String()), nil
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		// Tolerate bare numbers from older gateway builds.
		unquoted = string(data)
	}
	parsed, err := ParseSnowflake(unquoted)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// GuildID identifies a guild (server).
type GuildID = Snowflake

// UserID identifies a user globally, independent of guild membership.
type UserID = Snowflake

// RoleID identifies a role within a guild.
type RoleID = Snowflake
