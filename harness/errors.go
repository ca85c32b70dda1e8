package harness

import "fmt"

// ReplayFailedError reports a replay invocation that exited nonzero. Replay
// of a well-formed, already-captured trace is expected to always succeed, so
// this aborts the run before any expectation is checked; a failure here
// means the fixture or environment is broken, not the behavior under test.
type ReplayFailedError struct {
	Trace    string
	ExitCode int
}

func (e *ReplayFailedError) Error() string {
	return fmt.Sprintf("replay of trace %q exited with code %d", e.Trace, e.ExitCode)
}

// MismatchError identifies the first expected line that was not found in a
// captured output. It is fatal for the whole run, not just the fixture.
type MismatchError struct {
	Fixture string
	Line    string
	Source  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: output does not contain %q (from %s)", e.Fixture, e.Line, e.Source)
}
