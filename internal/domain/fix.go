package domain

// FixResult is the outcome of attempting to auto-fix a single file.
//
// Attempted is false only when the pre-check found the file already clean,
// in which case the fixer was never invoked, Changed is false, and Remaining
// is the (empty) pre-check report.
type FixResult struct {
	Path      string       `json:"path"`
	Attempted bool         `json:"attempted"`
	Changed   bool         `json:"changed"`
	Remaining *BatchReport `json:"remaining"`
}
