// Package toolchain discovers and validates the PHP_CodeSniffer
// installation once at startup. Failures here are fatal before any
// orchestration run begins; nothing in this package executes mid-run.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// MinMajorVersion is the oldest phpcs major release with the JSON report
// shape the analyzer parses.
const MinMajorVersion = 3

const probeTimeout = 10 * time.Second

// Env is the resolved toolchain environment, threaded into the invoker
// constructors as plain configuration.
type Env struct {
	PHPCSPath  string
	PHPCBFPath string
	Version    string
	Standards  []string
}

// HasStandard reports whether the installation exposes the named ruleset.
func (e *Env) HasStandard(name string) bool {
	for _, s := range e.Standards {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

var versionRe = regexp.MustCompile(`version\s+(\d+)\.(\d+)\.(\d+)`)

// Discover resolves both executables, gates on the phpcs version, and
// lists the installed standards. cfg paths take precedence over PATH.
func Discover(ctx context.Context, cfg domain.Config) (*Env, error) {
	phpcs, err := resolve(cfg.PHPCSPath, "phpcs")
	if err != nil {
		return nil, err
	}
	phpcbf, err := resolve(cfg.PHPCBFPath, "phpcbf")
	if err != nil {
		return nil, err
	}

	version, err := probeVersion(ctx, phpcs)
	if err != nil {
		return nil, err
	}

	standards, err := probeStandards(ctx, phpcs)
	if err != nil {
		return nil, err
	}

	env := &Env{PHPCSPath: phpcs, PHPCBFPath: phpcbf, Version: version, Standards: standards}
	if !env.HasStandard(cfg.Standard) {
		return nil, fmt.Errorf("standard %q is not installed (available: %s)",
			cfg.Standard, strings.Join(standards, ", "))
	}
	return env, nil
}

func resolve(explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}

func probeVersion(ctx context.Context, bin string) (string, error) {
	out, err := probe(ctx, bin, "--version")
	if err != nil {
		return "", err
	}
	version, major, ok := ParseVersion(out)
	if !ok {
		return "", fmt.Errorf("could not parse phpcs version from %q", strings.TrimSpace(out))
	}
	if major < MinMajorVersion {
		return "", fmt.Errorf("phpcs %s is too old, need >= %d.0.0", version, MinMajorVersion)
	}
	return version, nil
}

func probeStandards(ctx context.Context, bin string) ([]string, error) {
	out, err := probe(ctx, bin, "-i")
	if err != nil {
		return nil, err
	}
	standards := ParseStandards(out)
	if len(standards) == 0 {
		return nil, fmt.Errorf("phpcs reports no installed standards: %q", strings.TrimSpace(out))
	}
	return standards, nil
}

func probe(ctx context.Context, bin string, arg string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, arg)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s %s: %w", bin, arg, err)
	}
	return stdout.String(), nil
}

// ParseVersion extracts the semantic version from phpcs --version output,
// e.g. "PHP_CodeSniffer version 3.13.0 (stable) by Squiz and PHPCSStandards".
func ParseVersion(out string) (version string, major int, ok bool) {
	m := versionRe.FindStringSubmatch(out)
	if m == nil {
		return "", 0, false
	}
	major, _ = strconv.Atoi(m[1])
	return fmt.Sprintf("%s.%s.%s", m[1], m[2], m[3]), major, true
}

// ParseStandards extracts ruleset names from phpcs -i output, e.g.
// "The installed coding standards are MySource, PEAR, PSR1, PSR12 and Zend".
func ParseStandards(out string) []string {
	_, rest, found := strings.Cut(out, " are ")
	if !found {
		return nil
	}
	rest = strings.TrimSpace(rest)
	rest = strings.ReplaceAll(rest, " and ", ", ")
	var standards []string
	for _, part := range strings.Split(rest, ",") {
		if s := strings.TrimSpace(part); s != "" {
			standards = append(standards, s)
		}
	}
	return standards
}
