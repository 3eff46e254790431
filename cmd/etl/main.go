package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/shopgraph-backend/internal/app"
	"github.com/yungbote/shopgraph-backend/internal/etl"
	"github.com/yungbote/shopgraph-backend/internal/observability"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
	"github.com/yungbote/shopgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/shopgraph-backend/internal/platform/pgdb"
)

// One pipeline run per invocation: refresh cycles re-run the binary.
func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := app.LoadConfig()
	ctx := context.Background()

	if shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName + "-etl",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	}); shutdown != nil {
		defer shutdown(ctx)
	}

	pg, err := pgdb.NewFromEnv(ctx, log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Error("Neo4j init failed", "error", err)
		os.Exit(1)
	}
	defer graphClient.Close(ctx)

	pipeline := etl.NewPipeline(pg, graphClient, etl.PipelineOptions{
		ReadyTimeout: cfg.ReadyTimeout,
		SchemaFile:   cfg.SchemaFile,
		Reset:        cfg.Reset,
	}, log)

	summaries, err := pipeline.Run(ctx)
	for _, s := range summaries {
		log.Info("Pass summary", "pass", s.Pass, "attempted", s.Attempted, "written", s.Written, "skipped", s.Skipped)
	}
	if err != nil {
		log.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}
