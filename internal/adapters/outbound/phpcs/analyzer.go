// Package phpcs wraps the PHP_CodeSniffer command-line tools (phpcs and
// phpcbf) behind the domain Analyzer and Fixer ports.
//
// phpcs overloads its exit code: non-zero means both "violations found" and
// "the tool broke". Every invocation is classified here into exactly one of
// clean, violations-found (a parsed BatchReport) or invocation failure
// (*domain.InvocationError); no raw exit code leaks past this package.
package phpcs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// Analyzer invokes phpcs with a JSON report over a batch of targets.
type Analyzer struct {
	bin     string
	timeout time.Duration
}

// NewAnalyzer builds an Analyzer around a resolved phpcs executable path.
func NewAnalyzer(bin string, timeout time.Duration) *Analyzer {
	return &Analyzer{bin: bin, timeout: timeout}
}

// Check runs phpcs once over all targets and returns the consolidated
// report. An empty target set returns a trivial successful report without
// invoking the tool.
func (a *Analyzer) Check(ctx context.Context, targets []string, standard string) (*domain.BatchReport, error) {
	if len(targets) == 0 {
		return domain.EmptyBatchReport(), nil
	}

	args := []string{"--report=json", "-q"}
	if standard != "" {
		args = append(args, "--standard="+standard)
	}
	args = append(args, targets...)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &domain.InvocationError{
			Tool:   "phpcs",
			Args:   args,
			Stderr: stderr.String(),
			Reason: "timed out after " + a.timeout.String(),
		}
	}

	switch code := exitCode(err); {
	case err == nil:
		// Exit 0: no violations. phpcs still emits a report with zero
		// totals; the parse is not required for the outcome.
		return domain.EmptyBatchReport(), nil
	case code == 1 || code == 2:
		// Violations found; the report is on stdout.
		report, perr := parseReport(stdout.Bytes(), targets)
		if perr != nil {
			return nil, &domain.InvocationError{
				Tool:     "phpcs",
				Args:     args,
				ExitCode: code,
				Stderr:   stderr.String(),
				Reason:   "unparsable report: " + perr.Error(),
			}
		}
		return report, nil
	case code > 2:
		return nil, &domain.InvocationError{
			Tool:     "phpcs",
			Args:     args,
			ExitCode: code,
			Stderr:   stderr.String(),
			Reason:   "tool error",
		}
	default:
		// The process never ran (missing binary, permission, …).
		return nil, &domain.InvocationError{
			Tool:   "phpcs",
			Args:   args,
			Stderr: stderr.String(),
			Reason: "could not run: " + err.Error(),
		}
	}
}

func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 0
}

// Wire shapes of the phpcs JSON report.
type wireReport struct {
	Totals struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
		Fixable  int `json:"fixable"`
	} `json:"totals"`
	Files map[string]wireFile `json:"files"`
}

type wireFile struct {
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Messages []wireMessage `json:"messages"`
}

type wireMessage struct {
	Message  string `json:"message"`
	Source   string `json:"source"`
	Severity int    `json:"severity"`
	Fixable  bool   `json:"fixable"`
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// parseReport decodes a phpcs JSON report into a BatchReport. JSON maps are
// unordered in Go, so per-file order follows the requested target order;
// report entries not matching any target (directory targets expand to many
// files) are appended sorted by path.
func parseReport(data []byte, targets []string) (*domain.BatchReport, error) {
	var wire wireReport
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	remaining := make(map[string]wireFile, len(wire.Files))
	for path, f := range wire.Files {
		remaining[path] = f
	}

	var files []domain.FileReport
	take := func(path string) {
		f, ok := remaining[path]
		if !ok {
			return
		}
		delete(remaining, path)
		files = append(files, toFileReport(path, f))
	}

	for _, t := range targets {
		take(t)
		if abs, err := filepath.Abs(t); err == nil {
			take(abs)
		}
	}

	rest := make([]string, 0, len(remaining))
	for path := range remaining {
		rest = append(rest, path)
	}
	sort.Strings(rest)
	for _, path := range rest {
		files = append(files, toFileReport(path, remaining[path]))
	}

	return domain.NewBatchReport(files), nil
}

func toFileReport(path string, f wireFile) domain.FileReport {
	r := domain.FileReport{Path: path}
	for _, m := range f.Messages {
		r.Messages = append(r.Messages, domain.Violation{
			Message:  m.Message,
			Source:   m.Source,
			Severity: m.Severity,
			Category: m.Type,
			Fixable:  m.Fixable,
			Line:     m.Line,
			Column:   m.Column,
		})
	}
	return r
}
