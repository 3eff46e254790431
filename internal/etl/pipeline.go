package etl

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
	"github.com/yungbote/shopgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/shopgraph-backend/internal/platform/pgdb"
)

var tracer = otel.Tracer("shopgraph/etl")

type PipelineOptions struct {
	// ReadyTimeout bounds each dependency readiness wait.
	ReadyTimeout time.Duration
	// SchemaFile is an optional cypher statement file; missing is fine.
	SchemaFile string
	// Reset wipes the graph before loading. Opt-in only.
	Reset bool
	// Sizes override the default per-pass batch sizes when non-zero.
	Sizes BatchSizes
}

type Pipeline struct {
	pg    *pgdb.Pool
	graph *neo4jdb.Client
	opts  PipelineOptions
	log   *logger.Logger
}

func NewPipeline(pg *pgdb.Pool, graph *neo4jdb.Client, opts PipelineOptions, log *logger.Logger) *Pipeline {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 120 * time.Second
	}
	defaults := DefaultBatchSizes()
	if opts.Sizes.Category <= 0 {
		opts.Sizes.Category = defaults.Category
	}
	if opts.Sizes.Product <= 0 {
		opts.Sizes.Product = defaults.Product
	}
	if opts.Sizes.Customer <= 0 {
		opts.Sizes.Customer = defaults.Customer
	}
	if opts.Sizes.Order <= 0 {
		opts.Sizes.Order = defaults.Order
	}
	if opts.Sizes.OrderItem <= 0 {
		opts.Sizes.OrderItem = defaults.OrderItem
	}
	return &Pipeline{pg: pg, graph: graph, opts: opts, log: log.With("component", "Pipeline")}
}

// Run executes one full refresh: readiness, extraction, category
// derivation, schema bootstrap, then the five load passes. Strictly
// sequential; the relational connection is released before any graph
// write, and the graph session spans bootstrap through load.
func (p *Pipeline) Run(ctx context.Context) ([]PassSummary, error) {
	ctx, span := tracer.Start(ctx, "etl.run")
	defer span.End()

	p.log.Info("Pipeline starting, waiting for dependencies...")
	if err := p.pg.WaitReady(ctx, p.opts.ReadyTimeout); err != nil {
		return nil, err
	}
	if err := p.graph.WaitReady(ctx, p.opts.ReadyTimeout); err != nil {
		return nil, err
	}

	p.log.Info("Reading from Postgres...")
	extractCtx, extractSpan := tracer.Start(ctx, "etl.extract")
	extraction, err := NewExtractor(p.pg.DB(), p.log).ExtractAll(extractCtx)
	extractSpan.End()
	if err != nil {
		return nil, err
	}

	categories := DeriveCategories(extraction.Products)
	p.log.Info("Derived categories", "count", len(categories))

	p.log.Info("Writing to Neo4j...")
	session := p.graph.NewWriteSession(ctx)
	defer session.Close(ctx)
	exec := NewSessionExecutor(session)

	if err := RunCypherFile(ctx, exec, p.opts.SchemaFile, p.log); err != nil {
		return nil, err
	}
	if err := EnsureConstraints(ctx, exec); err != nil {
		return nil, err
	}
	if p.opts.Reset {
		p.log.Warn("Resetting graph before load")
		if err := ResetGraph(ctx, exec); err != nil {
			return nil, err
		}
	}

	loadCtx, loadSpan := tracer.Start(ctx, "etl.load")
	loader := NewLoader(exec, p.opts.Sizes, p.log)
	summaries, err := loader.Load(loadCtx,
		categories,
		extraction.Products,
		extraction.Customers,
		extraction.Orders,
		extraction.OrderItems,
	)
	for _, s := range summaries {
		loadSpan.SetAttributes(
			attribute.Int(s.Pass+".attempted", s.Attempted),
			attribute.Int64(s.Pass+".written", s.Written),
			attribute.Int64(s.Pass+".skipped", s.Skipped),
		)
	}
	loadSpan.End()
	if err != nil {
		return summaries, err
	}

	p.log.Info("Pipeline done")
	return summaries, nil
}
