package defaultrolehandlers

import (
	"fmt"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// setRoleArgs is the decoded argument struct of a setrole invocation.
type setRoleArgs struct {
	UserID sharedtypes.UserID
	RoleID sharedtypes.RoleID
}

// OptionError reports which positional option failed validation. Argument
// order is strict: option 0 must be a user reference and option 1 a role
// reference; the decoder never swaps a reversed pair back.
type OptionError struct {
	Position int
	Want     string
	Got      string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %d: want %s, got %s", e.Position, e.Want, e.Got)
}

// decodeSetRoleOptions extracts the strict positional (user, role) pair from
// the raw option list.
func decodeSetRoleOptions(options []discordevents.CommandOption) (setRoleArgs, error) {
	userID, err := decodeOption(options, 0, discordevents.OptionTypeUser)
	if err != nil {
		return setRoleArgs{}, err
	}
	roleID, err := decodeOption(options, 1, discordevents.OptionTypeRole)
	if err != nil {
		return setRoleArgs{}, err
	}
	return setRoleArgs{UserID: userID, RoleID: roleID}, nil
}

func decodeOption(options []discordevents.CommandOption, position int, wantType string) (sharedtypes.Snowflake, error) {
	if position >= len(options) {
		return 0, &OptionError{Position: position, Want: wantType, Got: "missing"}
	}
	opt := options[position]
	if opt.Type != wantType {
		return 0, &OptionError{Position: position, Want: wantType, Got: opt.Type}
	}
	id, err := sharedtypes.ParseSnowflake(opt.Value)
	if err != nil {
		return 0, &OptionError{Position: position, Want: wantType, Got: fmt.Sprintf("unparsable value %q", opt.Value)}
	}
	return id, nil
}
