package defaultrolehandlers

import (
	"context"
	"sync"

	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// FakeDefaultRoleService provides a programmable stub for the service
// interface.
type FakeDefaultRoleService struct {
	mu    sync.Mutex
	trace []string

	AssignDefaultRoleFunc   func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) (results.OperationResult, error)
	ReconcileMemberJoinFunc func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error)
}

// NewFakeDefaultRoleService initializes a new fake with an empty trace.
func NewFakeDefaultRoleService() *FakeDefaultRoleService {
	return &FakeDefaultRoleService{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeDefaultRoleService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeDefaultRoleService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeDefaultRoleService) AssignDefaultRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) (results.OperationResult, error) {
	f.record("AssignDefaultRole")
	if f.AssignDefaultRoleFunc != nil {
		return f.AssignDefaultRoleFunc(ctx, guildID, userID, roleID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeDefaultRoleService) ReconcileMemberJoin(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	f.record("ReconcileMemberJoin")
	if f.ReconcileMemberJoinFunc != nil {
		return f.ReconcileMemberJoinFunc(ctx, guildID, userID)
	}
	return results.OperationResult{}, nil
}
