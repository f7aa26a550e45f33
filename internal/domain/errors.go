package domain

import (
	"errors"
	"fmt"
	"strings"
)

// InvocationError reports that running the external tool did not produce a
// usable result: the binary was missing, crashed, timed out, or emitted
// output that could not be parsed as a violation report. It is never
// conflated with "violations found".
type InvocationError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Reason   string
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s invocation failed: %s", e.Tool, e.Reason)
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " (ran: %s %s)", e.Tool, strings.Join(e.Args, " "))
	}
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " [exit %d]", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

// IsInvocationError reports whether err wraps an InvocationError.
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}
