package application

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// FixService exposes single-file auto-fixing.
type FixService struct {
	fixer domain.Fixer
	cfg   domain.Config
	log   *log.Logger
}

func NewFixService(fixer domain.Fixer, cfg domain.Config, logger *log.Logger) *FixService {
	return &FixService{fixer: fixer, cfg: cfg, log: logger}
}

// FixFile auto-fixes one file in place and reports what remains.
func (s *FixService) FixFile(ctx context.Context, dir string, file string, standard string) (*domain.FixResult, error) {
	path, err := resolveTarget(dir, file, false)
	if err != nil {
		return nil, err
	}
	if standard == "" {
		standard = s.cfg.Standard
	}

	result, err := s.fixer.Fix(ctx, path, standard)
	if err != nil {
		return nil, err
	}

	s.log.Debug("fix finished",
		"file", file,
		"attempted", result.Attempted,
		"changed", result.Changed,
		"remaining_errors", result.Remaining.TotalErrors,
	)
	return result, nil
}
