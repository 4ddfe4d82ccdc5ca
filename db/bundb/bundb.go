// Package bundb owns the database connection pool and hands out typed
// repositories.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
	"github.com/guildstone/rolekeeper-bot/config"
)

// maxOpenConns bounds the pool so slow I/O on one event cannot exhaust the
// database while other events are in flight.
const maxOpenConns = 5

// DBService bundles the repositories sharing one pool.
type DBService struct {
	UserRoleDB *defaultroledb.UserRoleDBImpl
	db         *bun.DB
}

// GetDB returns the underlying database handle.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	sqldb.SetMaxOpenConns(maxOpenConns)

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*defaultroledb.UserRole)(nil))

	logger.InfoContext(ctx, "Database connection established")

	return &DBService{
		UserRoleDB: &defaultroledb.UserRoleDBImpl{DB: db},
		db:         db,
	}, nil
}

// Close releases the pool.
func (s *DBService) Close() error {
	return s.db.Close()
}
