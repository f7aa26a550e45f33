package phpcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// writeScript installs a fake tool as a shell script and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

const sampleReport = `{
  "totals": {"errors": 2, "warnings": 1, "fixable": 2},
  "files": {
    "a.php": {"errors": 0, "warnings": 1, "messages": [
      {"message": "Line exceeds 120 characters", "source": "Generic.Files.LineLength.TooLong",
       "severity": 5, "fixable": false, "type": "WARNING", "line": 12, "column": 121}
    ]},
    "z.php": {"errors": 2, "warnings": 0, "messages": [
      {"message": "Expected 1 space", "source": "Squiz.WhiteSpace.OperatorSpacing.NoSpaceBefore",
       "severity": 5, "fixable": true, "type": "ERROR", "line": 3, "column": 9},
      {"message": "Missing file doc comment", "source": "PEAR.Commenting.FileComment.Missing",
       "severity": 5, "fixable": true, "type": "ERROR", "line": 1, "column": 1}
    ]}
  }
}`

func TestAnalyzer_Check_Clean(t *testing.T) {
	bin := writeScript(t, "phpcs", "exit 0")
	a := NewAnalyzer(bin, 10*time.Second)

	report, err := a.Check(context.Background(), []string{"a.php"}, "PSR12")
	require.NoError(t, err)
	assert.True(t, report.Succeeded)
	assert.True(t, report.CanCommit)
	assert.Empty(t, report.Files)
}

func TestAnalyzer_Check_ViolationsFound(t *testing.T) {
	bin := writeScript(t, "phpcs", fmt.Sprintf("cat <<'EOF'\n%s\nEOF\nexit 1", sampleReport))
	a := NewAnalyzer(bin, 10*time.Second)

	report, err := a.Check(context.Background(), []string{"z.php", "a.php"}, "PSR12")
	require.NoError(t, err)

	assert.False(t, report.CanCommit)
	assert.Equal(t, 2, report.TotalErrors)
	assert.Equal(t, 1, report.TotalWarnings)
	assert.Equal(t, 2, report.TotalFixable)

	// File order follows the requested target order, not map order.
	require.Len(t, report.Files, 2)
	assert.Equal(t, "z.php", report.Files[0].Path)
	assert.Equal(t, "a.php", report.Files[1].Path)

	// Message order is the analyzer's emission order.
	assert.Equal(t, 3, report.Files[0].Messages[0].Line)
	assert.Equal(t, 1, report.Files[0].Messages[1].Line)
}

func TestAnalyzer_Check_EmptyTargets_NoInvocation(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "invoked")
	bin := writeScript(t, "phpcs", "touch "+marker+"\nexit 0")
	a := NewAnalyzer(bin, 10*time.Second)

	report, err := a.Check(context.Background(), nil, "PSR12")
	require.NoError(t, err)
	assert.True(t, report.Succeeded)
	assert.NoFileExists(t, marker)
}

func TestAnalyzer_Check_ToolError(t *testing.T) {
	bin := writeScript(t, "phpcs", "echo 'Ruleset Nope not found' >&2\nexit 3")
	a := NewAnalyzer(bin, 10*time.Second)

	_, err := a.Check(context.Background(), []string{"a.php"}, "Nope")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
	assert.Contains(t, err.Error(), "Ruleset Nope not found")
}

func TestAnalyzer_Check_MalformedReport(t *testing.T) {
	bin := writeScript(t, "phpcs", "echo 'PHP Fatal error'\nexit 1")
	a := NewAnalyzer(bin, 10*time.Second)

	_, err := a.Check(context.Background(), []string{"a.php"}, "PSR12")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
	assert.Contains(t, err.Error(), "unparsable report")
}

func TestAnalyzer_Check_MissingBinary(t *testing.T) {
	a := NewAnalyzer(filepath.Join(t.TempDir(), "nope"), 10*time.Second)

	_, err := a.Check(context.Background(), []string{"a.php"}, "PSR12")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
}

func TestAnalyzer_Check_Timeout(t *testing.T) {
	bin := writeScript(t, "phpcs", "sleep 5")
	a := NewAnalyzer(bin, 100*time.Millisecond)

	_, err := a.Check(context.Background(), []string{"a.php"}, "PSR12")
	require.Error(t, err)
	assert.True(t, domain.IsInvocationError(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestParseReport_AbsoluteTargetMatching(t *testing.T) {
	abs, err := filepath.Abs("b.php")
	require.NoError(t, err)

	data := fmt.Sprintf(`{"totals":{"errors":1,"warnings":0,"fixable":0},
		"files":{%q:{"errors":1,"warnings":0,"messages":[
		{"message":"x","source":"A.B.C","severity":5,"fixable":false,"type":"ERROR","line":1,"column":1}]}}}`, abs)

	report, err := parseReport([]byte(data), []string{"b.php"})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, abs, report.Files[0].Path)
}

func TestParseReport_UnmatchedFilesSorted(t *testing.T) {
	data := `{"totals":{"errors":2,"warnings":0,"fixable":0},"files":{
		"dir/z.php":{"errors":1,"warnings":0,"messages":[{"message":"x","source":"A.B.C","severity":5,"fixable":false,"type":"ERROR","line":1,"column":1}]},
		"dir/a.php":{"errors":1,"warnings":0,"messages":[{"message":"x","source":"A.B.C","severity":5,"fixable":false,"type":"ERROR","line":1,"column":1}]}}}`

	// A directory target matches nothing; report entries come out sorted.
	report, err := parseReport([]byte(data), []string{"dir"})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "dir/a.php", report.Files[0].Path)
	assert.Equal(t, "dir/z.php", report.Files[1].Path)
}
