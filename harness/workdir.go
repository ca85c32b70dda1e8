package harness

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
)

// EnterDir changes the working directory to dir and returns a restore
// function that puts the process back where it was. Callers defer the
// restore so that every exit path, including an abort, leaves the caller's
// working directory intact.
func EnterDir(dir string) (func(), error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	return func() {
		if err := os.Chdir(prev); err != nil {
			logger.Errorf("failed to restore working directory %s: %v", prev, err)
		}
	}, nil
}
