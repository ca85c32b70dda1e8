package harness

import (
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rtic-scope/scopecheck/fixtures"
)

// Match verifies that every expected line occurs somewhere in the captured
// output as a contiguous, case-sensitive substring. Presence is the only
// property checked: order, position and repetition are ignored. The first
// missing line is returned as a *MismatchError.
func Match(fixture string, captured string, expected fixtures.ExpectedOutput) error {
	for _, line := range expected.Lines {
		if strings.Contains(captured, line) {
			continue
		}
		logMismatch(fixture, captured, line)
		return &MismatchError{Fixture: fixture, Line: line, Source: expected.Path}
	}
	return nil
}

// logMismatch echoes the captured output and a character diff against the
// closest captured line, so the missing expectation can be diagnosed from
// the run log alone. The echo is diagnostic only; the MismatchError carries
// the pass/fail contract.
func logMismatch(fixture, captured, want string) {
	logger.Errorf("%s: expected line not found: %q", fixture, want)
	logger.Infof("captured output:\n%s", captured)
	if closest, ok := closestLine(captured, want); ok {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(want, closest, false)
		logger.Infof("closest captured line: %s", dmp.DiffPrettyText(diffs))
	}
}

// closestLine returns the non-blank captured line with the smallest edit
// distance to want.
func closestLine(captured, want string) (string, bool) {
	dmp := diffmatchpatch.New()
	best, bestDist := "", -1
	for _, line := range strings.Split(captured, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		dist := dmp.DiffLevenshtein(dmp.DiffMain(want, line, false))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = line, dist
		}
	}
	return best, bestDist >= 0
}
