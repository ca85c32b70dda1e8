package harness

import (
	"strings"

	"github.com/flanksource/clicky/exec"
)

// Invocation describes one external process run.
type Invocation struct {
	Bin  string
	Args []string
	Dir  string
}

func (i Invocation) String() string {
	return strings.Join(append([]string{i.Bin}, i.Args...), " ")
}

// Captured is the merged stdout/stderr text and exit status of a single
// invocation. It is produced fresh per invocation, matched, and discarded;
// nothing is carried across fixtures.
type Captured struct {
	Output   string
	ExitCode int
	// Err is a spawn-level failure (binary not found, not executable),
	// distinct from the process exiting nonzero.
	Err error
}

// Invoker runs external processes. The build and tool steps go through this
// interface so that tests can substitute a fake returning canned output,
// without cargo or a tool binary present.
type Invoker interface {
	Run(inv Invocation) Captured
}

type execInvoker struct{}

// NewInvoker returns the Invoker used outside of tests.
func NewInvoker() Invoker {
	return execInvoker{}
}

func (execInvoker) Run(inv Invocation) Captured {
	p := exec.NewExec(inv.Bin, inv.Args...).WithCwd(inv.Dir)
	// A nonzero exit still produces output worth matching; the caller
	// decides whether the exit code itself is fatal.
	p.SucceedOnNonZero = true
	res := p.Run().Result()
	return Captured{Output: res.Output(), ExitCode: res.ExitCode, Err: res.Error}
}
