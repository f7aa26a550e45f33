package domain

import (
	"fmt"
	"time"
)

// Config holds the project-level sniffgate settings, loaded from
// .sniffgate.yaml or defaulted.
type Config struct {
	// Standard is the phpcs ruleset name (e.g. PSR12, PSR2, Squiz).
	Standard string `yaml:"standard"`
	// Extensions lists the file extensions (without dot) considered part
	// of the analyzed language when resolving the staged set.
	Extensions []string `yaml:"extensions"`
	// PHPCSPath and PHPCBFPath override executable discovery via PATH.
	PHPCSPath  string `yaml:"phpcs_path"`
	PHPCBFPath string `yaml:"phpcbf_path"`
	// CheckTimeoutSeconds and FixTimeoutSeconds bound a single external
	// tool invocation.
	CheckTimeoutSeconds int `yaml:"check_timeout_seconds"`
	FixTimeoutSeconds   int `yaml:"fix_timeout_seconds"`
	// FixWorkers is the fan-out width of the pre-commit fix pass.
	FixWorkers int `yaml:"fix_workers"`
}

// DefaultConfig returns the settings used when no .sniffgate.yaml exists.
func DefaultConfig() Config {
	return Config{
		Standard:            "PSR12",
		Extensions:          []string{"php"},
		CheckTimeoutSeconds: 60,
		FixTimeoutSeconds:   60,
		FixWorkers:          4,
	}
}

// Validate catches nonsensical values before they reach the invokers.
func (c Config) Validate() error {
	if c.Standard == "" {
		return fmt.Errorf("standard must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	if c.CheckTimeoutSeconds < 0 || c.FixTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.FixWorkers < 0 {
		return fmt.Errorf("fix_workers must not be negative")
	}
	return nil
}

// CheckTimeout returns the bound for one analyzer invocation.
func (c Config) CheckTimeout() time.Duration {
	if c.CheckTimeoutSeconds == 0 {
		return 60 * time.Second
	}
	return time.Duration(c.CheckTimeoutSeconds) * time.Second
}

// FixTimeout returns the bound for one fixer invocation.
func (c Config) FixTimeout() time.Duration {
	if c.FixTimeoutSeconds == 0 {
		return 60 * time.Second
	}
	return time.Duration(c.FixTimeoutSeconds) * time.Second
}
