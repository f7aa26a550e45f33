package domain

// Git staging statuses the resolver reports. Deleted entries are filtered
// out by the resolver and never reach the orchestrator.
const (
	StatusAdded    = "added"
	StatusModified = "modified"
	StatusRenamed  = "renamed"
	StatusCopied   = "copied"
)

// StagedFile is one entry of the staged set.
type StagedFile struct {
	// Path is the absolute on-disk path, suitable for handing to the
	// analyzer and fixer.
	Path string `json:"path"`
	// RelPath is the path relative to the repository root, suitable for
	// re-staging and for display.
	RelPath string `json:"rel_path"`
	Status  string `json:"status"`
}

// RestageInstruction tells the caller which paths (relative to the
// repository root) must be re-added to the index because fixing changed
// their on-disk content.
type RestageInstruction struct {
	Paths []string `json:"paths"`
}

// PreCommitOptions controls a single orchestration run.
type PreCommitOptions struct {
	// Standard overrides the configured ruleset when non-empty.
	Standard string `json:"standard,omitempty"`
	// Restage executes the restage instruction at the end of the run.
	Restage bool `json:"restage"`
}

// PreCommitResult is the terminal artifact of one pre-commit orchestration
// run. FixedPaths keeps the candidate processing order. Restage is present
// iff FixedPaths is non-empty.
type PreCommitResult struct {
	FixedPaths  []string            `json:"fixed_paths"`
	FinalReport *BatchReport        `json:"final_report"`
	Restage     *RestageInstruction `json:"restage,omitempty"`
	Restaged    bool                `json:"restaged"`
	CanCommit   bool                `json:"can_commit"`
	// Diagnostics records per-file fix failures and restage failures.
	// They explain the run; they never flip CanCommit.
	Diagnostics []string `json:"diagnostics,omitempty"`
}
