package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hairyhenderson/toml"
)

// ManifestInfo is the subset of a manifest fixture the harness reports on
// when activating it.
type ManifestInfo struct {
	// PackageName is [package].name, or empty if the manifest omits it.
	PackageName string
	// HasScopeMetadata is true when the manifest carries a
	// [package.metadata.rtic-scope] table.
	HasScopeMetadata bool
}

type manifestDoc struct {
	Package struct {
		Name     string `toml:"name"`
		Metadata struct {
			RTICScope map[string]interface{} `toml:"rtic-scope"`
		} `toml:"metadata"`
	} `toml:"package"`
}

// PeekManifest reads just enough of a manifest fixture to describe it in the
// run log. Parse failures are returned, not fatal: a fixture may be
// deliberately malformed to exercise the tool's own diagnostics.
func PeekManifest(path string) (ManifestInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestInfo{}, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var doc manifestDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return ManifestInfo{}, fmt.Errorf("%s is not valid TOML: %w", filepath.Base(path), err)
	}
	return ManifestInfo{
		PackageName:      doc.Package.Name,
		HasScopeMetadata: len(doc.Package.Metadata.RTICScope) > 0,
	}, nil
}
