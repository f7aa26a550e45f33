package phpcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// scriptedAnalyzer returns canned reports in call order.
type scriptedAnalyzer struct {
	reports []*domain.BatchReport
	calls   int
}

func (s *scriptedAnalyzer) Check(_ context.Context, _ []string, _ string) (*domain.BatchReport, error) {
	r := s.reports[s.calls]
	s.calls++
	return r, nil
}

func dirtyReport(path string) *domain.BatchReport {
	return domain.NewBatchReport([]domain.FileReport{
		{Path: path, Messages: []domain.Violation{
			{Category: domain.CategoryError, Fixable: true, Line: 1, Column: 1},
		}},
	})
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.php")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFixer_Fix_CleanFileNeverInvokesFixer(t *testing.T) {
	target := writeTempFile(t, "<?php\n")
	marker := filepath.Join(t.TempDir(), "invoked")
	bin := writeScript(t, "phpcbf", "touch "+marker+"\nexit 1")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{domain.EmptyBatchReport()}}
	f := NewFixer(bin, analyzer, 10*time.Second)

	result, err := f.Fix(context.Background(), target, "PSR12")
	require.NoError(t, err)

	assert.False(t, result.Attempted)
	assert.False(t, result.Changed)
	assert.True(t, result.Remaining.Clean())
	assert.NoFileExists(t, marker)
	assert.Equal(t, 1, analyzer.calls)
}

func TestFixer_Fix_ChangedDetectedByContent(t *testing.T) {
	target := writeTempFile(t, "<?php echo 1 ;\n")
	// phpcbf exits 1 when it applied fixes; the file is the last argument.
	bin := writeScript(t, "phpcbf", `printf '<?php echo 1;\n' > "$2"`+"\nexit 1")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{
		dirtyReport(target),
		domain.EmptyBatchReport(),
	}}
	f := NewFixer(bin, analyzer, 10*time.Second)

	result, err := f.Fix(context.Background(), target, "")
	require.NoError(t, err)

	assert.True(t, result.Attempted)
	assert.True(t, result.Changed)
	assert.True(t, result.Remaining.Clean())
	assert.Equal(t, 2, analyzer.calls)
}

func TestFixer_Fix_ExitCodeAloneIsNotAChange(t *testing.T) {
	target := writeTempFile(t, "<?php echo 1;\n")
	// Claims fixes were applied but rewrites nothing.
	bin := writeScript(t, "phpcbf", "exit 1")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{
		dirtyReport(target),
		dirtyReport(target),
	}}
	f := NewFixer(bin, analyzer, 10*time.Second)

	result, err := f.Fix(context.Background(), target, "")
	require.NoError(t, err)

	assert.True(t, result.Attempted)
	assert.False(t, result.Changed)
	assert.False(t, result.Remaining.Clean())
}

func TestFixer_Fix_FixerFailure(t *testing.T) {
	target := writeTempFile(t, "<?php syntax error\n")
	bin := writeScript(t, "phpcbf", "echo 'could not rewrite' >&2\nexit 3")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{dirtyReport(target)}}
	f := NewFixer(bin, analyzer, 10*time.Second)

	_, err := f.Fix(context.Background(), target, "")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
	assert.Contains(t, err.Error(), "could not rewrite")
}

func TestFixer_Fix_MissingBinary(t *testing.T) {
	target := writeTempFile(t, "<?php\n")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{dirtyReport(target)}}
	f := NewFixer(filepath.Join(t.TempDir(), "nope"), analyzer, 10*time.Second)

	_, err := f.Fix(context.Background(), target, "")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
}

func TestFixer_Fix_Timeout(t *testing.T) {
	target := writeTempFile(t, "<?php\n")
	bin := writeScript(t, "phpcbf", "sleep 5")

	analyzer := &scriptedAnalyzer{reports: []*domain.BatchReport{dirtyReport(target)}}
	f := NewFixer(bin, analyzer, 100*time.Millisecond)

	_, err := f.Fix(context.Background(), target, "")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestFixer_Fix_SecondRunIsNoop(t *testing.T) {
	target := writeTempFile(t, "<?php echo 1 ;\n")
	bin := writeScript(t, "phpcbf", `printf '<?php echo 1;\n' > "$2"`+"\nexit 1")

	first := &scriptedAnalyzer{reports: []*domain.BatchReport{
		dirtyReport(target),
		domain.EmptyBatchReport(),
	}}
	f := NewFixer(bin, first, 10*time.Second)

	result, err := f.Fix(context.Background(), target, "")
	require.NoError(t, err)
	require.True(t, result.Changed)

	// Everything fixable is resolved; the second run never reaches phpcbf.
	second := &scriptedAnalyzer{reports: []*domain.BatchReport{domain.EmptyBatchReport()}}
	f = NewFixer(bin, second, 10*time.Second)

	result, err = f.Fix(context.Background(), target, "")
	require.NoError(t, err)
	assert.False(t, result.Attempted)
	assert.False(t, result.Changed)
}
