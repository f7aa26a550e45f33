package domain

import "context"

// Analyzer runs the external code sniffer over a set of targets.
//
// An empty target set short-circuits to an empty successful BatchReport
// without invoking the tool. A non-nil error is always an invocation
// failure (or a wrapped one); it is never a "violations found" outcome.
type Analyzer interface {
	Check(ctx context.Context, targets []string, standard string) (*BatchReport, error)
}

// Fixer attempts to auto-fix a single file in place, then re-checks it.
type Fixer interface {
	Fix(ctx context.Context, path string, standard string) (*FixResult, error)
}

// StagedSource lists and re-stages files in the version-control index.
//
// StagedFiles degrades to an empty slice (nil error) when dir is not inside
// a repository; an empty staged set is a valid, successful state.
type StagedSource interface {
	StagedFiles(dir string, extensions []string) ([]StagedFile, error)
	Restage(dir string, paths []string) error
}
