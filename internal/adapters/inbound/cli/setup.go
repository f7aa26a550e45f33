package cli

import (
	"context"
	"fmt"

	configAdapter "github.com/sniffgate/sniffgate/internal/adapters/outbound/config"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/gitindex"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/phpcs"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/toolchain"
	"github.com/sniffgate/sniffgate/internal/application"
	"github.com/sniffgate/sniffgate/internal/domain"
	"github.com/sniffgate/sniffgate/internal/logging"
)

// services bundles the wired application services for one command run.
type services struct {
	check     *application.CheckService
	fix       *application.FixService
	precommit *application.PreCommitService
	cfg       domain.Config
}

// newServices loads config, validates the phpcs installation, and wires
// the outbound adapters. A broken toolchain fails the command before any
// orchestration starts.
func newServices(ctx context.Context, dir string, verbose bool) (*services, error) {
	cfg, err := configAdapter.New().Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	env, err := toolchain.Discover(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("toolchain discovery: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.New(level)
	logger.Debug("toolchain ready", "phpcs", env.PHPCSPath, "version", env.Version)

	analyzer := phpcs.NewAnalyzer(env.PHPCSPath, cfg.CheckTimeout())
	fixer := phpcs.NewFixer(env.PHPCBFPath, analyzer, cfg.FixTimeout())
	git := gitindex.New()

	return &services{
		check:     application.NewCheckService(analyzer, git, cfg, logger),
		fix:       application.NewFixService(fixer, cfg, logger),
		precommit: application.NewPreCommitService(git, analyzer, fixer, cfg, logger),
		cfg:       cfg,
	}, nil
}
