package domain

import "fmt"

// Violation categories as reported by the analyzer.
const (
	CategoryError   = "ERROR"
	CategoryWarning = "WARNING"
)

// Violation represents a single finding at a specific position in a file.
// Immutable once produced by the analyzer.
type Violation struct {
	Message  string `json:"message"`
	Source   string `json:"source"`
	Severity int    `json:"severity"`
	Category string `json:"category"`
	Fixable  bool   `json:"fixable"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// FileReport aggregates the violations found in one file. Messages keep the
// analyzer's emission order.
type FileReport struct {
	Path         string      `json:"path"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Messages     []Violation `json:"messages"`
}

// BatchReport is the outcome of checking a set of files. Only files with at
// least one message appear in Files; clean files are omitted entirely.
// Constructed fresh on every analyzer call and never mutated afterwards.
type BatchReport struct {
	Succeeded     bool         `json:"succeeded"`
	CanCommit     bool         `json:"can_commit"`
	TotalErrors   int          `json:"total_errors"`
	TotalWarnings int          `json:"total_warnings"`
	TotalFixable  int          `json:"total_fixable"`
	Files         []FileReport `json:"files,omitempty"`
	Summary       string       `json:"summary"`
}

// NewBatchReport builds a BatchReport from per-file reports, recomputing the
// aggregate totals from the message lists so the counts can never drift from
// the messages they describe. Files with zero messages are dropped.
func NewBatchReport(files []FileReport) *BatchReport {
	r := &BatchReport{}
	for _, f := range files {
		if len(f.Messages) == 0 {
			continue
		}
		f.ErrorCount = 0
		f.WarningCount = 0
		for _, m := range f.Messages {
			switch m.Category {
			case CategoryError:
				f.ErrorCount++
			case CategoryWarning:
				f.WarningCount++
			}
			if m.Fixable {
				r.TotalFixable++
			}
		}
		r.TotalErrors += f.ErrorCount
		r.TotalWarnings += f.WarningCount
		r.Files = append(r.Files, f)
	}
	r.Succeeded = r.TotalErrors == 0
	r.CanCommit = r.Succeeded
	r.Summary = summarize(r)
	return r
}

// EmptyBatchReport is the trivial successful report for an empty target set.
func EmptyBatchReport() *BatchReport {
	return NewBatchReport(nil)
}

// Clean reports whether the batch found no messages at all, errors or
// warnings alike.
func (r *BatchReport) Clean() bool {
	return r.TotalErrors == 0 && r.TotalWarnings == 0
}

func summarize(r *BatchReport) string {
	if len(r.Files) == 0 {
		return "no violations found"
	}
	return fmt.Sprintf("%d error(s), %d warning(s) in %d file(s), %d auto-fixable",
		r.TotalErrors, r.TotalWarnings, len(r.Files), r.TotalFixable)
}
