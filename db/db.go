package db

import (
	"context"
	"fmt"

	"cafe-cli/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open connects to the Postgres database holding the menu_items table.
// The caller owns the pool and must Close it.
func Open(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
