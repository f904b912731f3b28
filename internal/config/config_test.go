package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestBindFlagsOverridesDefaults(t *testing.T) {
	cfg := Default()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)

	cmd.SetArgs([]string{"--solver", "sat", "--time-limit", "5s"})
	if err := cmd.ParseFlags([]string{"--solver", "sat", "--time-limit", "5s"}); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cfg.Solver != "sat" {
		t.Errorf("expected solver sat, got %q", cfg.Solver)
	}
	if cfg.TimeLimit != 5*time.Second {
		t.Errorf("expected time limit 5s, got %s", cfg.TimeLimit)
	}
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := Default()
	cfg.Solver = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unrecognized solver strategy")
	}
}

func TestValidateRejectsNonPositiveTimeLimit(t *testing.T) {
	cfg := Default()
	cfg.TimeLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a non-positive time limit")
	}
}
