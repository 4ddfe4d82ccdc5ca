package defaultroledb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// UserRole is the sole persisted entity: the default role assigned to a
// user. user_id is the primary key, so a user has at most one mapping and a
// new assignment overwrites the old one. The numeric(20) column type holds
// the full unsigned 64-bit snowflake range without truncation.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`

	UserID    sharedtypes.UserID `bun:"user_id,pk,notnull,type:numeric(20)"`
	RoleID    sharedtypes.RoleID `bun:"role_id,notnull,type:numeric(20)"`
	CreatedAt time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
