package etl

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CypherExecutor runs a single write statement. The returned count is the
// first integer value of the first record, or zero when the statement
// returns nothing. Schema and load code depend on this instead of a
// driver session so tests can capture statements.
type CypherExecutor interface {
	Execute(ctx context.Context, cypher string, params map[string]any) (int64, error)
}

type sessionExecutor struct {
	session neo4j.SessionWithContext
}

// NewSessionExecutor wraps an open write session. Each statement runs in
// its own managed transaction, so a batch is its own unit of work.
func NewSessionExecutor(session neo4j.SessionWithContext) CypherExecutor {
	return &sessionExecutor{session: session}
}

func (e *sessionExecutor) Execute(ctx context.Context, cypher string, params map[string]any) (int64, error) {
	out, err := e.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 || len(records[0].Values) == 0 {
			return int64(0), nil
		}
		if n, ok := records[0].Values[0].(int64); ok {
			return n, nil
		}
		return int64(0), nil
	})
	if err != nil {
		return 0, err
	}
	n, _ := out.(int64)
	return n, nil
}
