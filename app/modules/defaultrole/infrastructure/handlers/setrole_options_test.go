package defaultrolehandlers

import (
	"errors"
	"testing"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

func TestDecodeSetRoleOptions(t *testing.T) {
	userOption := discordevents.CommandOption{Name: "user", Type: discordevents.OptionTypeUser, Value: "80351110224678912"}
	roleOption := discordevents.CommandOption{Name: "role", Type: discordevents.OptionTypeRole, Value: "175928847299117063"}

	tests := []struct {
		name         string
		options      []discordevents.CommandOption
		want         setRoleArgs
		wantPosition int
		wantGot      string
	}{
		{
			name:    "valid pair",
			options: []discordevents.CommandOption{userOption, roleOption},
			want: setRoleArgs{
				UserID: sharedtypes.UserID(80351110224678912),
				RoleID: sharedtypes.RoleID(175928847299117063),
			},
			wantPosition: -1,
		},
		{
			name:         "no options",
			options:      nil,
			wantPosition: 0,
			wantGot:      "missing",
		},
		{
			name:         "role option missing",
			options:      []discordevents.CommandOption{userOption},
			wantPosition: 1,
			wantGot:      "missing",
		},
		{
			name:         "swapped order is not repaired",
			options:      []discordevents.CommandOption{roleOption, userOption},
			wantPosition: 0,
			wantGot:      discordevents.OptionTypeRole,
		},
		{
			name: "unparsable user value",
			options: []discordevents.CommandOption{
				{Name: "user", Type: discordevents.OptionTypeUser, Value: "@someone"},
				roleOption,
			},
			wantPosition: 0,
			wantGot:      `unparsable value "@someone"`,
		},
		{
			name: "wrong type in role position",
			options: []discordevents.CommandOption{
				userOption,
				{Name: "role", Type: discordevents.OptionTypeUser, Value: "175928847299117063"},
			},
			wantPosition: 1,
			wantGot:      discordevents.OptionTypeUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSetRoleOptions(tt.options)
			if tt.wantPosition < 0 {
				if err != nil {
					t.Fatalf("decodeSetRoleOptions() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("decodeSetRoleOptions() = %+v, want %+v", got, tt.want)
				}
				return
			}

			var optErr *OptionError
			if !errors.As(err, &optErr) {
				t.Fatalf("decodeSetRoleOptions() error = %v, want *OptionError", err)
			}
			if optErr.Position != tt.wantPosition {
				t.Errorf("OptionError.Position = %d, want %d", optErr.Position, tt.wantPosition)
			}
			if optErr.Got != tt.wantGot {
				t.Errorf("OptionError.Got = %q, want %q", optErr.Got, tt.wantGot)
			}
		})
	}
}
