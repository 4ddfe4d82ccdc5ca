package defaultroledb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// UserRoleDBImpl implements Repository on bun.
type UserRoleDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*UserRoleDBImpl)(nil)

func (db *UserRoleDBImpl) Upsert(ctx context.Context, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	now := time.Now().UTC()
	mapping := &UserRole{
		UserID:    userID,
		RoleID:    roleID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.DB.NewInsert().
		Model(mapping).
		On("CONFLICT (user_id) DO UPDATE").
		Set("role_id = EXCLUDED.role_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert user role: %w", err)
	}
	return nil
}

func (db *UserRoleDBImpl) Lookup(ctx context.Context, userID sharedtypes.UserID) (sharedtypes.RoleID, error) {
	var mapping UserRole
	err := db.DB.NewSelect().
		Model(&mapping).
		Column("role_id").
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to look up user role: %w", err)
	}
	return mapping.RoleID, nil
}
