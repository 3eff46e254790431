package pgdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/envutil"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

const readyPollInterval = 2 * time.Second

type Pool struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewFromEnv(ctx context.Context, log *logger.Logger) (*Pool, error) {
	if log == nil {
		return nil, fmt.Errorf("pgdb: logger required")
	}
	serviceLog := log.With("client", "PostgresPool")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "postgres")
	name := envutil.String("POSTGRES_DB", "shop")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name,
	)

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgdb: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgdb: init pool: %w", err)
	}

	return &Pool{pool: pool, log: serviceLog}, nil
}

func (p *Pool) DB() *pgxpool.Pool { return p.pool }

// WaitReady polls the database with SELECT 1 every two seconds until it
// answers or the timeout elapses.
func (p *Pool) WaitReady(ctx context.Context, timeout time.Duration) error {
	p.log.Info("Waiting for Postgres...", "timeout", timeout.String())
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		if lastErr = p.ping(ctx); lastErr == nil {
			p.log.Info("Postgres is ready")
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: postgres not ready after %s: %v",
				pkgerrors.ErrDependencyUnavailable, timeout, lastErr)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", pkgerrors.ErrDependencyUnavailable, ctx.Err())
		case <-time.After(readyPollInterval):
		}
	}
}

func (p *Pool) ping(ctx context.Context) error {
	var one int
	return p.pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (p *Pool) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
	p.pool = nil
}
