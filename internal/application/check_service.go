package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// CheckService exposes the analyzer over the three target kinds: the
// staged set, a single file, and a directory.
type CheckService struct {
	analyzer domain.Analyzer
	staged   domain.StagedSource
	cfg      domain.Config
	log      *log.Logger
}

func NewCheckService(analyzer domain.Analyzer, staged domain.StagedSource, cfg domain.Config, logger *log.Logger) *CheckService {
	return &CheckService{analyzer: analyzer, staged: staged, cfg: cfg, log: logger}
}

// CheckStaged checks every staged file with an analyzed extension. No git
// context, or an empty staged set, is a successful empty report.
func (s *CheckService) CheckStaged(ctx context.Context, dir string, standard string) (*domain.BatchReport, error) {
	files, err := s.staged.StagedFiles(dir, s.cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("resolving staged files: %w", err)
	}

	targets := make([]string, 0, len(files))
	for _, f := range files {
		targets = append(targets, f.Path)
	}

	s.log.Debug("checking staged set", "files", len(targets))
	return s.analyzer.Check(ctx, targets, s.standard(standard))
}

// CheckFile checks a single file.
func (s *CheckService) CheckFile(ctx context.Context, dir string, file string, standard string) (*domain.BatchReport, error) {
	path, err := resolveTarget(dir, file, false)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Check(ctx, []string{path}, s.standard(standard))
}

// CheckDirectory checks every analyzable file under a directory; phpcs
// does the recursion itself.
func (s *CheckService) CheckDirectory(ctx context.Context, dir string, target string, standard string) (*domain.BatchReport, error) {
	path, err := resolveTarget(dir, target, true)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Check(ctx, []string{path}, s.standard(standard))
}

func (s *CheckService) standard(override string) string {
	if override != "" {
		return override
	}
	return s.cfg.Standard
}

// resolveTarget validates a required path argument before anything is
// executed, and anchors relative paths at dir.
func resolveTarget(dir, target string, wantDir bool) (string, error) {
	if target == "" {
		if wantDir {
			return "", fmt.Errorf("directory path is required")
		}
		return "", fmt.Errorf("file path is required")
	}
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("target %s: %w", target, err)
	}
	if wantDir != info.IsDir() {
		if wantDir {
			return "", fmt.Errorf("target %s is not a directory", target)
		}
		return "", fmt.Errorf("target %s is a directory, not a file", target)
	}
	return path, nil
}
