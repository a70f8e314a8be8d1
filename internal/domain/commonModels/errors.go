package commonModels

import (
	"errors"
	"fmt"
)

// The five failure kinds callers are expected to distinguish. External
// service errors are wrapped with %w so errors.Is works across layers.
var (
	ErrIndexNotReady    = errors.New("index not ready - ingest documents first")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrEmbeddingService = errors.New("embedding service failure")
	ErrGeneration       = errors.New("generation failure")
	ErrIngestRunning    = errors.New("ingestion already running")
)

// ConfigurationError is fatal at startup and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field string, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}
