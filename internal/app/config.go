package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchedulePath string // hcl file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int // 0 means GOMAXPROCS

	// PlanOnly prints the schedule and its barrier hints without running it.
	PlanOnly bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchedulePath == "" {
		return nil, errors.New("SchedulePath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
