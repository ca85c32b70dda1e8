package harness

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"

	"github.com/rtic-scope/scopecheck/fixtures"
)

// Switcher installs manifest fixtures as the active project configuration.
// Activation overwrites the previous content; the last activated manifest
// stays in effect for the rest of the run. There is no reset step.
type Switcher struct {
	// Target is the active configuration file, normally Cargo.toml at the
	// catalog root.
	Target string
}

// Activate copies the manifest fixture over the active configuration file
// and flushes it to disk before returning, so the next build or tool
// invocation sees the new configuration and not a cached page.
func (s Switcher) Activate(m fixtures.Fixture) error {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return fmt.Errorf("failed to read manifest fixture %s: %w", m, err)
	}

	f, err := os.Create(s.Target)
	if err != nil {
		return fmt.Errorf("failed to open active manifest %s: %w", s.Target, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write active manifest %s: %w", s.Target, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync active manifest %s: %w", s.Target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close active manifest %s: %w", s.Target, err)
	}

	if info, err := fixtures.PeekManifest(m.Path); err != nil {
		// Possibly under test: the tool surfaces its own manifest errors.
		logger.Warnf("activated manifest %s: %v", m.Name, err)
	} else {
		logger.V(4).Infof("activated manifest %s (package %q, rtic-scope metadata: %t)",
			m.Name, info.PackageName, info.HasScopeMetadata)
	}
	return nil
}
