package defaultroleservice

import (
	"context"
	"sync"

	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// ------------------------
// Fake repository
// ------------------------

// FakeRepository provides a programmable stub for the defaultroledb.Repository
// interface.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	UpsertFunc func(ctx context.Context, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
	LookupFunc func(ctx context.Context, userID sharedtypes.UserID) (sharedtypes.RoleID, error)
}

// NewFakeRepository initializes a new FakeRepository with an empty trace.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) Upsert(ctx context.Context, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, userID, roleID)
	}
	return nil
}

func (f *FakeRepository) Lookup(ctx context.Context, userID sharedtypes.UserID) (sharedtypes.RoleID, error) {
	f.record("Lookup")
	if f.LookupFunc != nil {
		return f.LookupFunc(ctx, userID)
	}
	return 0, defaultroledb.ErrNotFound
}

// NewMemoryRepository returns a FakeRepository with real upsert/lookup
// semantics over an in-memory map, for tests that exercise last-write-wins
// behavior end to end.
func NewMemoryRepository() *FakeRepository {
	var mu sync.Mutex
	store := map[sharedtypes.UserID]sharedtypes.RoleID{}

	f := NewFakeRepository()
	f.UpsertFunc = func(_ context.Context, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
		mu.Lock()
		defer mu.Unlock()
		store[userID] = roleID
		return nil
	}
	f.LookupFunc = func(_ context.Context, userID sharedtypes.UserID) (sharedtypes.RoleID, error) {
		mu.Lock()
		defer mu.Unlock()
		roleID, ok := store[userID]
		if !ok {
			return 0, defaultroledb.ErrNotFound
		}
		return roleID, nil
	}
	return f
}

// ------------------------
// Fake gateway
// ------------------------

// GrantCall records one AssignRole invocation.
type GrantCall struct {
	GuildID sharedtypes.GuildID
	UserID  sharedtypes.UserID
	RoleID  sharedtypes.RoleID
}

// FakeGateway provides a programmable stub for the discordgw.Gateway
// interface.
type FakeGateway struct {
	mu    sync.Mutex
	calls []GrantCall

	AssignRoleFunc func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
}

// NewFakeGateway initializes a new FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{calls: []GrantCall{}}
}

// Calls returns the recorded AssignRole invocations.
func (f *FakeGateway) Calls() []GrantCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GrantCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeGateway) AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	f.mu.Lock()
	f.calls = append(f.calls, GrantCall{GuildID: guildID, UserID: userID, RoleID: roleID})
	f.mu.Unlock()
	if f.AssignRoleFunc != nil {
		return f.AssignRoleFunc(ctx, guildID, userID, roleID)
	}
	return nil
}
