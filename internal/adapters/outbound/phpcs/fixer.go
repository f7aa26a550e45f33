package phpcs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// Fixer invokes phpcbf on a single file, bracketed by analyzer checks.
type Fixer struct {
	bin      string
	analyzer domain.Analyzer
	timeout  time.Duration
}

// NewFixer builds a Fixer around a resolved phpcbf executable path. The
// analyzer performs the pre- and post-fix checks.
func NewFixer(bin string, analyzer domain.Analyzer, timeout time.Duration) *Fixer {
	return &Fixer{bin: bin, analyzer: analyzer, timeout: timeout}
}

// Fix attempts to auto-fix path in place.
//
// A file the pre-check finds clean is never handed to phpcbf: Attempted is
// false and Remaining is the empty pre-check report. Otherwise phpcbf runs
// and the file is re-checked for the residual report. Changed is decided by
// comparing content hashes around the phpcbf call; phpcbf's exit code
// claims "fixes applied" even for idempotent rewrites, so it is not trusted
// as evidence of a content change.
func (f *Fixer) Fix(ctx context.Context, path string, standard string) (*domain.FixResult, error) {
	pre, err := f.analyzer.Check(ctx, []string{path}, standard)
	if err != nil {
		return nil, err
	}
	if pre.Clean() {
		return &domain.FixResult{Path: path, Remaining: pre}, nil
	}

	before, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s before fix: %w", path, err)
	}

	if err := f.run(ctx, path, standard); err != nil {
		return nil, err
	}

	after, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s after fix: %w", path, err)
	}

	post, err := f.analyzer.Check(ctx, []string{path}, standard)
	if err != nil {
		return nil, err
	}

	return &domain.FixResult{
		Path:      path,
		Attempted: true,
		Changed:   !bytes.Equal(before, after),
		Remaining: post,
	}, nil
}

// run executes phpcbf once. Exit codes 0 (nothing fixable), 1 (fixes
// applied) and 2 (fixes applied, some remained) all mean the fixer ran;
// only higher codes, a failed start or a timeout are invocation failures.
func (f *Fixer) run(ctx context.Context, path string, standard string) error {
	args := []string{"-q"}
	if standard != "" {
		args = append(args, "--standard="+standard)
	}
	args = append(args, path)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return &domain.InvocationError{
			Tool:   "phpcbf",
			Args:   args,
			Stderr: stderr.String(),
			Reason: "timed out after " + f.timeout.String(),
		}
	}
	if err == nil {
		return nil
	}
	if code := exitCode(err); code > 0 {
		if code <= 2 {
			return nil
		}
		return &domain.InvocationError{
			Tool:     "phpcbf",
			Args:     args,
			ExitCode: code,
			Stderr:   stderr.String(),
			Reason:   "fixer could not rewrite file",
		}
	}
	return &domain.InvocationError{
		Tool:   "phpcbf",
		Args:   args,
		Stderr: stderr.String(),
		Reason: "could not run: " + err.Error(),
	}
}

func hashFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}
