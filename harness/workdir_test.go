package harness

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterDir(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	target := t.TempDir()
	restore, err := EnterDir(target)
	require.NoError(t, err)

	inside, err := os.Getwd()
	require.NoError(t, err)
	assert.NotEqual(t, before, inside)

	restore()
	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEnterDirMissingTarget(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	_, err = EnterDir(t.TempDir() + "/does-not-exist")
	require.Error(t, err)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed EnterDir must not move the process")
}
