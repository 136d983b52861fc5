package infrastructure

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// NewPool connects to Postgres at dsn and checks the connection.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("empty postgres dsn")
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, pkgerrors.Wrap(err, "ping postgres")
	}
	return pool, nil
}
