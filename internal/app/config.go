package app

import (
	"time"

	"github.com/yungbote/shopgraph-backend/internal/platform/envutil"
)

type Config struct {
	Port         string
	ServiceName  string
	Environment  string
	Version      string
	ReadyTimeout time.Duration
	SchemaFile   string
	Reset        bool
}

func LoadConfig() Config {
	return Config{
		Port:         envutil.String("PORT", "8080"),
		ServiceName:  envutil.String("SERVICE_NAME", "shopgraph"),
		Environment:  envutil.String("APP_ENV", "development"),
		Version:      envutil.String("APP_VERSION", ""),
		ReadyTimeout: envutil.Seconds("ETL_READY_TIMEOUT_SECONDS", 120*time.Second),
		SchemaFile:   envutil.String("ETL_SCHEMA_FILE", "queries.cypher"),
		Reset:        envutil.Bool("ETL_RESET", false),
	}
}
