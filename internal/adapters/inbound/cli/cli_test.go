package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTool answers the startup probes and exits clean for everything else,
// standing in for a phpcs/phpcbf pair with no findings.
const fakeTool = `#!/bin/sh
case "$1" in
  --version) echo "PHP_CodeSniffer version 3.13.0 (stable) by Squiz and PHPCSStandards" ;;
  -i) echo "The installed coding standards are PEAR, PSR1, PSR12 and Zend" ;;
  *) exit 0 ;;
esac
exit 0
`

// fixtureProject builds a working directory whose .sniffgate.yaml points at
// fake phpcs/phpcbf executables.
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	phpcs := filepath.Join(dir, "phpcs")
	require.NoError(t, os.WriteFile(phpcs, []byte(fakeTool), 0o755))
	phpcbf := filepath.Join(dir, "phpcbf")
	require.NoError(t, os.WriteFile(phpcbf, []byte(fakeTool), 0o755))

	cfg := "phpcs_path: " + phpcs + "\nphpcbf_path: " + phpcbf + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sniffgate.yaml"), []byte(cfg), 0o644))

	return dir
}
