package etl

import (
	"context"
	"fmt"
	"os"
	"strings"

	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

// One uniqueness constraint per node identity. Creation is idempotent on
// the store side, so re-running the bootstrap is a no-op.
var constraintStatements = []string{
	`CREATE CONSTRAINT customer_id IF NOT EXISTS FOR (c:Customer) REQUIRE c.id IS UNIQUE`,
	`CREATE CONSTRAINT product_id IF NOT EXISTS FOR (p:Product) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT order_id IF NOT EXISTS FOR (o:Order) REQUIRE o.id IS UNIQUE`,
	`CREATE CONSTRAINT category_pk IF NOT EXISTS FOR (c:Category) REQUIRE c.name IS UNIQUE`,
}

func EnsureConstraints(ctx context.Context, exec CypherExecutor) error {
	for _, stmt := range constraintStatements {
		if _, err := exec.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("%w: create constraint: %v", pkgerrors.ErrSchemaBootstrap, err)
		}
	}
	return nil
}

// RunCypherFile executes an optional statement file. A missing file is a
// no-op. Splitting is purely syntactic; each fragment must itself be
// idempotent since nothing here deduplicates them.
func RunCypherFile(ctx context.Context, exec CypherExecutor, path string, log *logger.Logger) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.Debug("No schema file found, skipping", "path", path)
			}
			return nil
		}
		return fmt.Errorf("%w: read schema file: %v", pkgerrors.ErrSchemaBootstrap, err)
	}

	statements := SplitStatements(string(raw))
	if log != nil {
		log.Info("Running schema file", "path", path, "statements", len(statements))
	}
	for _, stmt := range statements {
		if _, err := exec.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("%w: schema file statement: %v", pkgerrors.ErrSchemaBootstrap, err)
		}
	}
	return nil
}

// SplitStatements strips full-line comments and browser-style directive
// lines, then splits the rest on ';', dropping empty fragments.
func SplitStatements(text string) []string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, ":") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, frag := range strings.Split(strings.Join(kept, "\n"), ";") {
		frag = strings.TrimSpace(frag)
		if frag != "" {
			statements = append(statements, frag)
		}
	}
	return statements
}

// ResetGraph wipes every node and relationship. Opt-in only; normal runs
// never call this.
func ResetGraph(ctx context.Context, exec CypherExecutor) error {
	if _, err := exec.Execute(ctx, `MATCH (n) DETACH DELETE n`, nil); err != nil {
		return fmt.Errorf("%w: reset graph: %v", pkgerrors.ErrSchemaBootstrap, err)
	}
	return nil
}
