package neo4jdb

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

const readyPollInterval = 2 * time.Second

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	uri      string
	log      *logger.Logger
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}

	uri := strings.TrimSpace(os.Getenv("NEO4J_URI"))
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := strings.TrimSpace(os.Getenv("NEO4J_USER"))
	if user == "" {
		user = "neo4j"
	}
	password := strings.TrimSpace(os.Getenv("NEO4J_PASSWORD"))
	if password == "" {
		password = "password"
	}
	database := strings.TrimSpace(os.Getenv("NEO4J_DATABASE"))

	timeoutSec := 10
	if v := strings.TrimSpace(os.Getenv("NEO4J_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxPool := 50
	if v := strings.TrimSpace(os.Getenv("NEO4J_MAX_POOL_SIZE")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxPool = parsed
		}
	}

	auth := neo4j.BasicAuth(user, password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = maxPool
		cfg.SocketConnectTimeout = time.Duration(timeoutSec) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	return &Client{
		Driver:   driver,
		Database: database,
		uri:      uri,
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

// NewReadSession opens a read-scoped session; the caller owns Close.
func (c *Client) NewReadSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.Database,
	})
}

// NewWriteSession opens a write-scoped session; the caller owns Close.
func (c *Client) NewWriteSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
}

// Ping runs a trivial read against the store.
func (c *Client) Ping(ctx context.Context) error {
	session := c.NewReadSession(ctx)
	defer session.Close(ctx)
	result, err := session.Run(ctx, "RETURN 1", nil)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

// WaitReady polls the store with a trivial query every two seconds until
// it answers or the timeout elapses.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	c.log.Info("Waiting for Neo4j...", "uri", c.uri, "timeout", timeout.String())
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		if lastErr = c.Ping(ctx); lastErr == nil {
			c.log.Info("Neo4j is ready")
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: neo4j not ready after %s: %v",
				pkgerrors.ErrDependencyUnavailable, timeout, lastErr)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", pkgerrors.ErrDependencyUnavailable, ctx.Err())
		case <-time.After(readyPollInterval):
		}
	}
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
