package defaultrolehandlers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/trace/noop"

	defaultroleevents "github.com/guildstone/rolekeeper-bot/app/events/defaultrole"
	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/internal/observability"
	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
	"github.com/guildstone/rolekeeper-bot/internal/testutils"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

func newTestHandlers(service *FakeDefaultRoleService) *DefaultRoleHandlers {
	return NewDefaultRoleHandlers(
		service,
		observability.NoOpLogger,
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelper(observability.NoOpLogger),
	)
}

func setRoleOptions(userID sharedtypes.UserID, roleID sharedtypes.RoleID) []discordevents.CommandOption {
	return []discordevents.CommandOption{
		{Name: "user", Type: discordevents.OptionTypeUser, Value: userID.String()},
		{Name: "role", Type: discordevents.OptionTypeRole, Value: roleID.String()},
	}
}

func TestDefaultRoleHandlers_HandleCommandInvoked(t *testing.T) {
	const (
		guildID sharedtypes.GuildID = 41771983423143937
		userID  sharedtypes.UserID  = 105
		roleID  sharedtypes.RoleID  = 9000
	)

	tests := []struct {
		name         string
		payload      *discordevents.CommandInvokedPayloadV1
		setupService func(*FakeDefaultRoleService)
		wantResults  []struct {
			topic   string
			payload any
		}
		wantServiceTrace []string
		wantErr          bool
	}{
		{
			name: "unknown command answers not implemented without touching the service",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-1",
				GuildID:       guildID,
				CommandName:   "banhammer",
			},
			wantResults: []struct {
				topic   string
				payload any
			}{
				{
					topic: discordevents.InteractionResponseV1,
					payload: &discordevents.InteractionResponsePayloadV1{
						InteractionID: "int-1",
						Content:       "not implemented :(",
					},
				},
			},
			wantServiceTrace: []string{},
		},
		{
			name: "swapped option order is rejected, not reordered",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-2",
				GuildID:       guildID,
				CommandName:   "setrole",
				Options: []discordevents.CommandOption{
					{Name: "role", Type: discordevents.OptionTypeRole, Value: roleID.String()},
					{Name: "user", Type: discordevents.OptionTypeUser, Value: userID.String()},
				},
			},
			wantResults: []struct {
				topic   string
				payload any
			}{
				{
					topic: discordevents.InteractionResponseV1,
					payload: &discordevents.InteractionResponsePayloadV1{
						InteractionID: "int-2",
						Content:       "Failed to setrole",
					},
				},
			},
			wantServiceTrace: []string{},
		},
		{
			name: "successful assignment publishes the result event and responds",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-3",
				GuildID:       guildID,
				CommandName:   "setrole",
				Options:       setRoleOptions(userID, roleID),
			},
			setupService: func(f *FakeDefaultRoleService) {
				f.AssignDefaultRoleFunc = func(_ context.Context, g sharedtypes.GuildID, u sharedtypes.UserID, r sharedtypes.RoleID) (results.OperationResult, error) {
					return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
						GuildID: g,
						UserID:  u,
						RoleID:  r,
						Granted: true,
					}), nil
				}
			},
			wantResults: []struct {
				topic   string
				payload any
			}{
				{
					topic: defaultroleevents.AssignmentResultV1,
					payload: &defaultroleevents.AssignmentResultPayloadV1{
						GuildID: guildID,
						UserID:  userID,
						RoleID:  roleID,
						Granted: true,
					},
				},
				{
					topic: discordevents.InteractionResponseV1,
					payload: &discordevents.InteractionResponsePayloadV1{
						InteractionID: "int-3",
						Content:       "Added Role to user",
					},
				},
			},
			wantServiceTrace: []string{"AssignDefaultRole"},
		},
		{
			name: "rejected grant surfaces the gateway detail",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-4",
				GuildID:       guildID,
				CommandName:   "setrole",
				Options:       setRoleOptions(userID, roleID),
			},
			setupService: func(f *FakeDefaultRoleService) {
				f.AssignDefaultRoleFunc = func(_ context.Context, g sharedtypes.GuildID, u sharedtypes.UserID, r sharedtypes.RoleID) (results.OperationResult, error) {
					return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
						GuildID:    g,
						UserID:     u,
						RoleID:     r,
						Granted:    false,
						GrantError: "missing permissions",
					}), nil
				}
			},
			wantResults: []struct {
				topic   string
				payload any
			}{
				{
					topic: defaultroleevents.AssignmentResultV1,
					payload: &defaultroleevents.AssignmentResultPayloadV1{
						GuildID:    guildID,
						UserID:     userID,
						RoleID:     roleID,
						Granted:    false,
						GrantError: "missing permissions",
					},
				},
				{
					topic: discordevents.InteractionResponseV1,
					payload: &discordevents.InteractionResponsePayloadV1{
						InteractionID: "int-4",
						Content:       "Error assigning role: missing permissions",
					},
				},
			},
			wantServiceTrace: []string{"AssignDefaultRole"},
		},
		{
			name: "store failure publishes the failed event and a failure response",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-5",
				GuildID:       guildID,
				CommandName:   "setrole",
				Options:       setRoleOptions(userID, roleID),
			},
			setupService: func(f *FakeDefaultRoleService) {
				f.AssignDefaultRoleFunc = func(_ context.Context, g sharedtypes.GuildID, u sharedtypes.UserID, r sharedtypes.RoleID) (results.OperationResult, error) {
					return results.Failure(&defaultroleevents.AssignmentFailedPayloadV1{
						GuildID: g,
						UserID:  u,
						RoleID:  r,
						Stage:   defaultroleevents.StageStore,
						Reason:  "connection refused",
					}, nil), nil
				}
			},
			wantResults: []struct {
				topic   string
				payload any
			}{
				{
					topic: defaultroleevents.AssignmentFailedV1,
					payload: &defaultroleevents.AssignmentFailedPayloadV1{
						GuildID: guildID,
						UserID:  userID,
						RoleID:  roleID,
						Stage:   defaultroleevents.StageStore,
						Reason:  "connection refused",
					},
				},
				{
					topic: discordevents.InteractionResponseV1,
					payload: &discordevents.InteractionResponsePayloadV1{
						InteractionID: "int-5",
						Content:       "Failed to setrole",
					},
				},
			},
			wantServiceTrace: []string{"AssignDefaultRole"},
		},
		{
			name:    "nil payload is an error",
			payload: nil,
			wantErr: true,
		},
		{
			name: "unexpected service error propagates",
			payload: &discordevents.CommandInvokedPayloadV1{
				InteractionID: "int-6",
				GuildID:       guildID,
				CommandName:   "setrole",
				Options:       setRoleOptions(userID, roleID),
			},
			setupService: func(f *FakeDefaultRoleService) {
				f.AssignDefaultRoleFunc = func(context.Context, sharedtypes.GuildID, sharedtypes.UserID, sharedtypes.RoleID) (results.OperationResult, error) {
					return results.OperationResult{}, errors.New("context canceled")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewFakeDefaultRoleService()
			if tt.setupService != nil {
				tt.setupService(service)
			}
			h := newTestHandlers(service)

			got, err := h.HandleCommandInvoked(context.Background(), tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatal("HandleCommandInvoked() expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("HandleCommandInvoked() unexpected error: %v", err)
			}

			if len(got) != len(tt.wantResults) {
				t.Fatalf("HandleCommandInvoked() returned %d results, want %d", len(got), len(tt.wantResults))
			}
			for i, want := range tt.wantResults {
				if got[i].Topic != want.topic {
					t.Errorf("result[%d] topic = %q, want %q", i, got[i].Topic, want.topic)
				}
				if diff := cmp.Diff(want.payload, got[i].Payload); diff != "" {
					t.Errorf("result[%d] payload mismatch (-want +got):\n%s", i, diff)
				}
			}

			if tt.wantServiceTrace != nil {
				if diff := cmp.Diff(tt.wantServiceTrace, service.Trace()); diff != "" {
					t.Errorf("service trace mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestDefaultRoleHandlers_HandleCommandInvoked_DecodedIDs(t *testing.T) {
	const (
		guildID sharedtypes.GuildID = 290926798626357250
		userID  sharedtypes.UserID  = 80351110224678912
		roleID  sharedtypes.RoleID  = 175928847299117063
	)

	var gotGuild sharedtypes.GuildID
	var gotUser sharedtypes.UserID
	var gotRole sharedtypes.RoleID

	service := NewFakeDefaultRoleService()
	service.AssignDefaultRoleFunc = func(_ context.Context, g sharedtypes.GuildID, u sharedtypes.UserID, r sharedtypes.RoleID) (results.OperationResult, error) {
		gotGuild, gotUser, gotRole = g, u, r
		return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
			GuildID: g, UserID: u, RoleID: r, Granted: true,
		}), nil
	}
	h := newTestHandlers(service)

	_, err := h.HandleCommandInvoked(context.Background(), &discordevents.CommandInvokedPayloadV1{
		InteractionID: "int-ids",
		GuildID:       guildID,
		CommandName:   "setrole",
		Options:       setRoleOptions(userID, roleID),
	})
	if err != nil {
		t.Fatalf("HandleCommandInvoked() unexpected error: %v", err)
	}

	if gotGuild != guildID || gotUser != userID || gotRole != roleID {
		t.Errorf("service received (%d, %d, %d), want (%d, %d, %d)",
			gotGuild, gotUser, gotRole, guildID, userID, roleID)
	}
}

func TestDefaultRoleHandlers_HandleCommandInvoked_GeneratedInvocations(t *testing.T) {
	gen := testutils.NewTestDataGenerator(42)

	for i := 0; i < 20; i++ {
		userID := gen.Snowflake()
		roleID := gen.Snowflake()
		payload := gen.SetRoleInvocation(userID, roleID)

		service := NewFakeDefaultRoleService()
		service.AssignDefaultRoleFunc = func(_ context.Context, g sharedtypes.GuildID, u sharedtypes.UserID, r sharedtypes.RoleID) (results.OperationResult, error) {
			if u != userID || r != roleID {
				t.Errorf("invocation %d: service received (%d, %d), want (%d, %d)", i, u, r, userID, roleID)
			}
			return results.Success(&defaultroleevents.AssignmentResultPayloadV1{
				GuildID: g, UserID: u, RoleID: r, Granted: true,
			}), nil
		}

		h := newTestHandlers(service)
		got, err := h.HandleCommandInvoked(context.Background(), payload)
		if err != nil {
			t.Fatalf("invocation %d: unexpected error: %v", i, err)
		}
		if len(got) != 2 {
			t.Fatalf("invocation %d: returned %d results, want 2", i, len(got))
		}
		if len(service.Trace()) != 1 {
			t.Errorf("invocation %d: service called %d times, want 1", i, len(service.Trace()))
		}
	}
}
