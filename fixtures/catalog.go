package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// Kind identifies which suite a fixture feeds.
type Kind string

const (
	// BinaryKind is a buildable program target under src/bin/.
	BinaryKind Kind = "binary"
	// ManifestKind is a project-configuration variant under manifests/.
	ManifestKind Kind = "manifest"
	// TraceKind is a recorded trace file under traces/.
	TraceKind Kind = "trace"
)

// Fixture is a single discovered input artifact. Its Name is the filename
// stem, which also selects the expected-output file by naming convention.
type Fixture struct {
	Name string
	Kind Kind
	Path string
}

func (f Fixture) String() string {
	return fmt.Sprintf("%s/%s", f.Kind, f.Name)
}

// Catalog is the fixture tree enumerated once at startup. Slices are sorted
// lexicographically by name and never mutated afterwards, so iteration order
// is the discovery order for the whole run.
type Catalog struct {
	Root      string
	Binaries  []Fixture
	Manifests []Fixture
	Traces    []Fixture
}

const (
	manifestGlob = "manifests/*.toml"
	binaryGlob   = "src/bin/*.rs"
	traceGlob    = "traces/*.trace"
	outDir       = "out"

	// ActiveManifest is the file at the catalog root that a manifest fixture
	// is copied over to become the effective project configuration.
	ActiveManifest = "Cargo.toml"
)

// Discover enumerates the fixture tree under root and returns the catalog.
// root may be relative; the catalog always carries the absolute path.
func Discover(root string) (*Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fixture root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("fixture root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture root %q is not a directory", root)
	}

	c := &Catalog{Root: abs}
	if c.Manifests, err = discover(abs, manifestGlob, ManifestKind); err != nil {
		return nil, err
	}
	if c.Binaries, err = discover(abs, binaryGlob, BinaryKind); err != nil {
		return nil, err
	}
	if c.Traces, err = discover(abs, traceGlob, TraceKind); err != nil {
		return nil, err
	}
	return c, nil
}

// Manifest returns the manifest fixture with the given name.
func (c *Catalog) Manifest(name string) (Fixture, bool) {
	return lo.Find(c.Manifests, func(f Fixture) bool { return f.Name == name })
}

// ActiveManifestPath returns the path of the file that Activate overwrites.
func (c *Catalog) ActiveManifestPath() string {
	return filepath.Join(c.Root, ActiveManifest)
}

func discover(root, pattern string, kind Kind) ([]Fixture, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return lo.Map(matches, func(path string, _ int) Fixture {
		return Fixture{Name: stem(path), Kind: kind, Path: path}
	}), nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
