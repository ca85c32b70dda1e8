package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtic-scope/scopecheck/fixtures"
)

func TestMatch(t *testing.T) {
	expected := func(lines ...string) fixtures.ExpectedOutput {
		return fixtures.ExpectedOutput{Path: "out/test.run", Lines: lines}
	}

	tests := []struct {
		name        string
		captured    string
		expected    fixtures.ExpectedOutput
		missingLine string
	}{
		{
			name:     "every line present passes",
			captured: "warning: something\nmain: unresolved symbol\ndone\n",
			expected: expected("main: unresolved symbol", "done"),
		},
		{
			name:     "order within the file is irrelevant",
			captured: "[0] ENTER main\n[1] EXIT main\n",
			expected: expected("[1] EXIT main", "[0] ENTER main"),
		},
		{
			name:     "a line appearing many times counts as present",
			captured: "tick\ntick\ntick\n",
			expected: expected("tick"),
		},
		{
			name:     "substring match does not require a full line",
			captured: "2021-01-01 [INFO] resolve: blinky -> 0x0800_0000 (fast path)",
			expected: expected("resolve: blinky"),
		},
		{
			name:     "no expectations always passes",
			captured: "anything at all",
			expected: expected(),
		},
		{
			name:        "matching is case-sensitive",
			captured:    "Main: Unresolved Symbol",
			expected:    expected("main: unresolved symbol"),
			missingLine: "main: unresolved symbol",
		},
		{
			name:        "first missing line is reported",
			captured:    "only this\n",
			expected:    expected("only this", "never appears", "also missing"),
			missingLine: "never appears",
		},
		{
			name:        "interleaved output is fine until a line is absent",
			captured:    "[0] ENTER main\nnoise\n",
			expected:    expected("[0] ENTER main", "[1] EXIT main"),
			missingLine: "[1] EXIT main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Match("trace/test", tt.captured, tt.expected)
			if tt.missingLine == "" {
				assert.NoError(t, err)
				return
			}
			var mismatch *MismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.missingLine, mismatch.Line)
			assert.Equal(t, "trace/test", mismatch.Fixture)
			assert.Equal(t, "out/test.run", mismatch.Source)
		})
	}
}

func TestClosestLine(t *testing.T) {
	captured := "warning: build had issues\nmain: unresolved symbol foo\ndone\n"
	closest, ok := closestLine(captured, "main: unresolved symbol bar")
	require.True(t, ok)
	assert.Equal(t, "main: unresolved symbol foo", closest)

	_, ok = closestLine("\n\n", "anything")
	assert.False(t, ok)
}

func TestMismatchErrorIsNotReplayError(t *testing.T) {
	err := Match("bin/a", "output", fixtures.ExpectedOutput{Lines: []string{"missing"}})
	var replay *ReplayFailedError
	assert.False(t, errors.As(err, &replay))
}
