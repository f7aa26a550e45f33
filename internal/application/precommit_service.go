package application

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// PreCommitService runs the full pre-commit pipeline: resolve the staged
// set, auto-fix each file, re-check the whole set, decide pass/block, and
// optionally re-stage what changed.
//
// One run is one pass through the stages, strictly in order. The fix pass
// fans out across files but must fully complete before the verify pass,
// because verification reads the on-disk state the fixes left behind.
type PreCommitService struct {
	staged   domain.StagedSource
	analyzer domain.Analyzer
	fixer    domain.Fixer
	cfg      domain.Config
	log      *log.Logger
}

func NewPreCommitService(
	staged domain.StagedSource,
	analyzer domain.Analyzer,
	fixer domain.Fixer,
	cfg domain.Config,
	logger *log.Logger,
) *PreCommitService {
	return &PreCommitService{staged: staged, analyzer: analyzer, fixer: fixer, cfg: cfg, log: logger}
}

// Run executes one orchestration run rooted at dir.
//
// Fixing is best-effort: a file the fixer fails on stays in the candidate
// set and is still verified in whatever state it is in; the failure becomes
// a diagnostic, never an abort. A verify-pass failure aborts the run
// outright, since no report produced from it can be trusted. A re-stage
// failure is downgraded to a diagnostic and never flips the commit
// decision: the file is correctly fixed on disk either way.
func (s *PreCommitService) Run(ctx context.Context, dir string, opts domain.PreCommitOptions) (*domain.PreCommitResult, error) {
	standard := opts.Standard
	if standard == "" {
		standard = s.cfg.Standard
	}

	candidates, err := s.staged.StagedFiles(dir, s.cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("resolving staged files: %w", err)
	}
	candidates = dedupe(candidates)

	if len(candidates) == 0 {
		s.log.Debug("nothing staged to check")
		return &domain.PreCommitResult{
			FinalReport: domain.EmptyBatchReport(),
			CanCommit:   true,
		}, nil
	}

	s.log.Debug("pre-commit run", "files", len(candidates), "standard", standard)

	result := &domain.PreCommitResult{}

	// Fix pass. Outcomes land in a slot per candidate so the reported
	// order is the candidate order regardless of completion order.
	type slot struct {
		fix *domain.FixResult
		err error
	}
	slots := make([]slot, len(candidates))

	var g errgroup.Group
	g.SetLimit(s.workers())
	for i, c := range candidates {
		g.Go(func() error {
			fix, err := s.fixer.Fix(ctx, c.Path, standard)
			slots[i] = slot{fix: fix, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range candidates {
		switch {
		case slots[i].err != nil:
			result.Diagnostics = append(result.Diagnostics,
				fmt.Sprintf("fixing %s: %v", c.RelPath, slots[i].err))
		case slots[i].fix.Changed:
			result.FixedPaths = append(result.FixedPaths, c.RelPath)
		}
	}

	// Verify pass over the entire candidate set, fixed or not.
	targets := make([]string, 0, len(candidates))
	for _, c := range candidates {
		targets = append(targets, c.Path)
	}
	final, err := s.analyzer.Check(ctx, targets, standard)
	if err != nil {
		return nil, fmt.Errorf("verify pass: %w", err)
	}
	result.FinalReport = final
	result.CanCommit = final.CanCommit

	if len(result.FixedPaths) > 0 {
		result.Restage = &domain.RestageInstruction{
			Paths: append([]string(nil), result.FixedPaths...),
		}
		if opts.Restage {
			if err := s.staged.Restage(dir, result.Restage.Paths); err != nil {
				result.Diagnostics = append(result.Diagnostics,
					fmt.Sprintf("re-staging failed, fixed files remain unstaged on disk: %v", err))
			} else {
				result.Restaged = true
			}
		}
	}

	s.log.Debug("pre-commit decided",
		"can_commit", result.CanCommit,
		"fixed", len(result.FixedPaths),
		"errors", final.TotalErrors,
		"warnings", final.TotalWarnings,
	)
	return result, nil
}

func (s *PreCommitService) workers() int {
	if s.cfg.FixWorkers <= 0 {
		return 1
	}
	return s.cfg.FixWorkers
}

// dedupe collapses duplicate candidate paths, keeping first-seen order.
// The resolver should never produce duplicates, but the fix pass must not
// run twice on one file if it does.
func dedupe(files []domain.StagedFile) []domain.StagedFile {
	seen := make(map[string]struct{}, len(files))
	out := files[:0]
	for _, f := range files {
		if _, ok := seen[f.Path]; ok {
			continue
		}
		seen[f.Path] = struct{}{}
		out = append(out, f)
	}
	return out
}
