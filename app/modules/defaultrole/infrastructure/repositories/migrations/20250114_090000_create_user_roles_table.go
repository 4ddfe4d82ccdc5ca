package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating user_roles table...")
			if _, err := db.NewCreateTable().Model((*defaultroledb.UserRole)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("user_roles table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping user_roles table...")
			if _, err := db.NewDropTable().Model((*defaultroledb.UserRole)(nil)).IfExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("user_roles table dropped successfully!")
			return nil
		},
	)
}
