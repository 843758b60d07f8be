// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package repair

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Strategy selects the search algorithm behind Plan. Both strategies
// satisfy the same soundness postcondition: a returned plan is always
// verified against the augmented graph.
type Strategy string

const (
	// StrategyGreedy covers every blocker, grouped by fanout. Cheap and
	// predictable.
	StrategyGreedy Strategy = "greedy"

	// StrategyExact searches blocker subsets in increasing cost order
	// and returns the first verified plan, so the defender count and
	// edge count are minimal. Bounded by the search budget.
	StrategyExact Strategy = "exact"
)

// Config contains planner settings.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after
// the planner is constructed.
type Config struct {
	// Budget is the maximum number of new defender arguments (k).
	Budget int `json:"budget" yaml:"budget"`

	// Fanout partitions blockers into defender groups: 0 means one
	// defender may attack all blockers (minimal node count), 1 means one
	// defender per blocker (maximal auditability), n means groups of n.
	Fanout int `json:"fanout" yaml:"fanout"`

	// Strategy selects greedy or exact search.
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// Force re-plans even when the goal is already satisfied.
	Force bool `json:"force" yaml:"force"`

	// MaxIterations caps candidate verifications during exact search.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// TimeLimit caps wall-clock time for one planning run.
	TimeLimit time.Duration `json:"time_limit" yaml:"time_limit"`

	// DefenderPrefix names generated defenders: prefix plus a sequence
	// number, skipping identifiers already present in the graph.
	DefenderPrefix string `json:"defender_prefix" yaml:"defender_prefix"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Budget:         1,
		Fanout:         0,
		Strategy:       StrategyGreedy,
		MaxIterations:  4096,
		TimeLimit:      10 * time.Second,
		DefenderPrefix: "R",
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("%w: budget %d is negative", ErrInvalidConfig, c.Budget)
	}
	if c.Fanout < 0 {
		return fmt.Errorf("%w: fanout %d is negative", ErrInvalidConfig, c.Fanout)
	}
	switch c.Strategy {
	case StrategyGreedy, StrategyExact:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalidConfig)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time_limit must be positive", ErrInvalidConfig)
	}
	if c.DefenderPrefix == "" {
		return fmt.Errorf("%w: defender_prefix must not be empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a Config from a JSON or YAML file (by extension),
// applies environment overrides, and validates the result.
//
// Environment overrides:
//   - DIALECTICA_REPAIR_BUDGET
//   - DIALECTICA_REPAIR_FANOUT
//   - DIALECTICA_REPAIR_STRATEGY
//   - DIALECTICA_REPAIR_MAX_ITERATIONS
//   - DIALECTICA_REPAIR_TIME_LIMIT (Go duration string)
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		switch filepath.Ext(path) {
		case ".json":
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse json config: %w", err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse yaml config: %w", err)
			}
		default:
			return cfg, fmt.Errorf("%w: unsupported config extension %q",
				ErrInvalidConfig, filepath.Ext(path))
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides mutates cfg from DIALECTICA_REPAIR_* variables.
// Unparseable values are ignored; validation catches the rest.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DIALECTICA_REPAIR_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Budget = n
		}
	}
	if v := os.Getenv("DIALECTICA_REPAIR_FANOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fanout = n
		}
	}
	if v := os.Getenv("DIALECTICA_REPAIR_STRATEGY"); v != "" {
		cfg.Strategy = Strategy(v)
	}
	if v := os.Getenv("DIALECTICA_REPAIR_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("DIALECTICA_REPAIR_TIME_LIMIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TimeLimit = d
		}
	}
}
