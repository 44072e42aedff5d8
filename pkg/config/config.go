// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendDynamoDB Backend = "dynamodb"
)

// Retention selects what happens to an execution result after its first
// retrieval.
type Retention string

const (
	RetentionRetain  Retention = "retain"
	RetentionConsume Retention = "consume"
)

// Config holds the service configuration.
type Config struct {
	HTTPPort       string
	Backend        Backend
	ProposalsTable string
	ResultsTable   string
	AuditQueueURL  string
	Retention      Retention
	RiskFlagRate   float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       envOr("HTTP_PORT", "8080"),
		Backend:        Backend(strings.ToLower(envOr("STORAGE_BACKEND", string(BackendMemory)))),
		ProposalsTable: os.Getenv("DYNAMODB_PROPOSALS_TABLE_NAME"),
		ResultsTable:   os.Getenv("DYNAMODB_RESULTS_TABLE_NAME"),
		AuditQueueURL:  os.Getenv("AUDIT_QUEUE_URL"),
		Retention:      Retention(strings.ToLower(envOr("RESULT_RETENTION", string(RetentionRetain)))),
		RiskFlagRate:   0.1,
	}

	switch cfg.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if cfg.ProposalsTable == "" || cfg.ResultsTable == "" {
			return nil, fmt.Errorf("dynamodb backend requires DYNAMODB_PROPOSALS_TABLE_NAME and DYNAMODB_RESULTS_TABLE_NAME")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	switch cfg.Retention {
	case RetentionRetain, RetentionConsume:
	default:
		return nil, fmt.Errorf("unknown result retention policy %q", cfg.Retention)
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
