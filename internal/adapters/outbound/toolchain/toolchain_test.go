package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sniffgate/sniffgate/internal/domain"
)

func TestParseVersion(t *testing.T) {
	out := "PHP_CodeSniffer version 3.13.0 (stable) by Squiz and PHPCSStandards\n"

	version, major, ok := ParseVersion(out)
	require.True(t, ok)
	assert.Equal(t, "3.13.0", version)
	assert.Equal(t, 3, major)
}

func TestParseVersion_Garbage(t *testing.T) {
	_, _, ok := ParseVersion("command not found")
	assert.False(t, ok)
}

func TestParseStandards(t *testing.T) {
	out := "The installed coding standards are MySource, PEAR, PSR1, PSR12, PSR2, Squiz and Zend\n"

	standards := ParseStandards(out)
	assert.Equal(t, []string{"MySource", "PEAR", "PSR1", "PSR12", "PSR2", "Squiz", "Zend"}, standards)
}

func TestParseStandards_Garbage(t *testing.T) {
	assert.Empty(t, ParseStandards("no standards here"))
}

func TestEnv_HasStandard(t *testing.T) {
	env := &Env{Standards: []string{"PSR1", "PSR12"}}

	assert.True(t, env.HasStandard("PSR12"))
	assert.True(t, env.HasStandard("psr12"))
	assert.False(t, env.HasStandard("Squiz"))
}

func fakePHPCS(t *testing.T, versionLine, standardsLine string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phpcs")
	body := `#!/bin/sh
case "$1" in
  --version) echo "` + versionLine + `" ;;
  -i) echo "` + standardsLine + `" ;;
esac
exit 0
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestDiscover(t *testing.T) {
	bin := fakePHPCS(t,
		"PHP_CodeSniffer version 3.13.0 (stable) by Squiz and PHPCSStandards",
		"The installed coding standards are PEAR, PSR1, PSR12 and Zend")

	cfg := domain.DefaultConfig()
	cfg.PHPCSPath = bin
	cfg.PHPCBFPath = bin

	env, err := Discover(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, bin, env.PHPCSPath)
	assert.Equal(t, "3.13.0", env.Version)
	assert.Contains(t, env.Standards, "PSR12")
}

func TestDiscover_TooOld(t *testing.T) {
	bin := fakePHPCS(t,
		"PHP_CodeSniffer version 2.9.2 (stable) by Squiz",
		"The installed coding standards are PEAR and PSR12")

	cfg := domain.DefaultConfig()
	cfg.PHPCSPath = bin
	cfg.PHPCBFPath = bin

	_, err := Discover(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too old")
}

func TestDiscover_StandardNotInstalled(t *testing.T) {
	bin := fakePHPCS(t,
		"PHP_CodeSniffer version 3.13.0 (stable) by Squiz",
		"The installed coding standards are PEAR and Zend")

	cfg := domain.DefaultConfig()
	cfg.PHPCSPath = bin
	cfg.PHPCBFPath = bin

	_, err := Discover(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `standard "PSR12" is not installed`)
}

func TestDiscover_MissingTool(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.PHPCSPath = ""
	cfg.PHPCBFPath = ""
	t.Setenv("PATH", t.TempDir())

	_, err := Discover(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}
