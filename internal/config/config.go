// Package config binds the command-line flags cmd/timetablectl exposes to
// a plain struct the solver facade consumes, the way russross-schedule
// binds its own package-level flag variables to a cobra.Command.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Strategy names one of the three solving strategies SPEC_FULL.md exposes
// through the --solver flag.
type Strategy string

const (
	StrategyGenetic Strategy = "ga"
	StrategyExact   Strategy = "sat"
	StrategyHybrid  Strategy = "hybrid"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyGenetic, StrategyExact, StrategyHybrid:
		return true
	}
	return false
}

// Config is the fully resolved set of run parameters for one invocation of
// cmd/timetablectl.
type Config struct {
	Solver       string
	DataDir      string
	TimeLimit    time.Duration
	NoTabuPolish bool
	Seed         int64
	Parallel     bool
	JSONLog      bool
	Debug        bool
}

// Default mirrors the flag defaults wired into BindFlags.
func Default() *Config {
	return &Config{
		Solver:    string(StrategyHybrid),
		DataDir:   ".",
		TimeLimit: 30 * time.Second,
		Seed:      42,
	}
}

// BindFlags attaches cmd's persistent flags to cfg's fields, the same
// pattern russross-schedule uses to wire package-level vars straight into
// cobra.Command.Flags().
func BindFlags(cmd *cobra.Command, cfg *Config) {
	cmd.PersistentFlags().StringVar(&cfg.Solver, "solver", cfg.Solver, "solving strategy: ga, sat, or hybrid")
	cmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory containing the input CSV tables")
	cmd.PersistentFlags().DurationVar(&cfg.TimeLimit, "time-limit", cfg.TimeLimit, "time budget for the exact solver stage")
	cmd.PersistentFlags().BoolVar(&cfg.NoTabuPolish, "no-tabu-polish", cfg.NoTabuPolish, "skip the tabu-search polish stage after the genetic solver")
	cmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed for the genetic solver and k-means clustering")
	cmd.PersistentFlags().BoolVar(&cfg.Parallel, "parallel", cfg.Parallel, "enable concurrent fitness evaluation in the genetic and tabu stages")
	cmd.PersistentFlags().BoolVar(&cfg.JSONLog, "json-log", cfg.JSONLog, "emit structured JSON logs instead of console-pretty output")
	cmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "pretty-print the raw master timetable before the formatted views")
}

// Validate checks the resolved config for problems BindFlags' string-typed
// flags can't catch at parse time.
func (c Config) Validate() error {
	if !Strategy(c.Solver).Valid() {
		return fmt.Errorf("invalid --solver %q: must be one of ga, sat, hybrid", c.Solver)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("invalid --time-limit %s: must be positive", c.TimeLimit)
	}
	return nil
}
