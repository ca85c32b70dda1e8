package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
)

// ExpectedOutput is the ordered sequence of literal lines a captured tool
// run must contain. Lines are checked independently; order within the file
// does not constrain where they appear in the output.
type ExpectedOutput struct {
	Path  string
	Lines []string
}

// MissingFixtureError reports an expected-output file that does not exist.
// This is a setup defect in the fixture tree and always aborts the run; a
// fixture without expectations must never pass silently.
type MissingFixtureError struct {
	Fixture Fixture
	Path    string
}

func (e *MissingFixtureError) Error() string {
	return fmt.Sprintf("no expected output for %s: %s does not exist", e.Fixture, e.Path)
}

// ExpectedOutputPath resolves the naming convention for f: binary and
// manifest fixtures map to out/<name>.run, trace fixtures to
// out/trace-<name>.run.
func (c *Catalog) ExpectedOutputPath(f Fixture) string {
	name := f.Name + ".run"
	if f.Kind == TraceKind {
		name = "trace-" + f.Name + ".run"
	}
	return filepath.Join(c.Root, outDir, name)
}

// ExpectedOutput loads the expected-output file for f. A missing file is a
// *MissingFixtureError. Lines that are empty after trimming are dropped with
// a warning: an empty substring matches any output, so keeping them would
// make the expectation vacuous.
func (c *Catalog) ExpectedOutput(f Fixture) (ExpectedOutput, error) {
	path := c.ExpectedOutputPath(f)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ExpectedOutput{}, &MissingFixtureError{Fixture: f, Path: path}
	}
	if err != nil {
		return ExpectedOutput{}, fmt.Errorf("failed to read expected output %s: %w", path, err)
	}

	out := ExpectedOutput{Path: path}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			// The segment after a trailing newline is not a line.
			if line != "" || i != len(lines)-1 {
				logger.V(4).Infof("%s: dropping blank expectation on line %d", path, i+1)
			}
			continue
		}
		out.Lines = append(out.Lines, line)
	}
	if len(out.Lines) == 0 {
		logger.Warnf("%s holds no non-blank expectations; %s will pass on any output", path, f)
	}
	return out, nil
}
