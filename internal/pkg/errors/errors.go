package errors

import "errors"

var (
	// ErrDependencyUnavailable means a backing service never became
	// reachable within the readiness timeout.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrSchemaBootstrap means a constraint or schema-file statement failed.
	ErrSchemaBootstrap = errors.New("schema bootstrap failed")
	// ErrExtraction means a relational read failed before any graph write.
	ErrExtraction = errors.New("extraction failed")
	// ErrLoad means a batch upsert failed mid-pass; earlier batches stay
	// applied.
	ErrLoad = errors.New("load failed")
	// ErrInvalidArgument is a generic sentinel for invalid client input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBackend means the graph store failed while serving a read.
	ErrBackend = errors.New("backend query failed")
)
