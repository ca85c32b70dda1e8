package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/rtic-scope/scopecheck/fixtures"
)

// GeneralManifest is the manifest fixture activated before the binary suite
// and the default resolve target for the manifest suite.
const GeneralManifest = "general"

// Options configures a harness run.
type Options struct {
	// Tool is the absolute path of the trace tool binary under test.
	Tool string
	// FixtureRoot is the fixture crate directory.
	FixtureRoot string
	// ResolveBin is the fixed binary target the manifest suite resolves
	// against. Defaults to GeneralManifest.
	ResolveBin string
	// ToolBinDir holds installed tool binaries; it is prepended to PATH
	// before the replay suite. Defaults to $HOME/.cargo/bin.
	ToolBinDir string
	// Filter optionally narrows fixtures to names matching this glob.
	// Filtering never reorders and never changes per-fixture semantics.
	Filter string
	// Invoker runs external processes; tests substitute a fake.
	Invoker Invoker
}

// Runner drives the three fixture suites strictly in sequence: per-binary
// resolve, per-manifest resolve, per-trace replay. The run is a single
// linear pass; the first fatal error aborts everything that follows. There
// is no retry and no resumption.
type Runner struct {
	opts     Options
	catalog  *fixtures.Catalog
	switcher Switcher
	builder  Builder
}

// NewRunner discovers the fixture catalog and prepares a runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Invoker == nil {
		opts.Invoker = NewInvoker()
	}
	if opts.ResolveBin == "" {
		opts.ResolveBin = GeneralManifest
	}
	catalog, err := fixtures.Discover(opts.FixtureRoot)
	if err != nil {
		return nil, err
	}
	return &Runner{
		opts:     opts,
		catalog:  catalog,
		switcher: Switcher{Target: catalog.ActiveManifestPath()},
		builder:  Builder{Invoker: opts.Invoker, Dir: catalog.Root},
	}, nil
}

// Catalog returns the discovered fixture catalog.
func (r *Runner) Catalog() *fixtures.Catalog {
	return r.catalog
}

// Run executes all suites and returns the first fatal error, if any. The
// working directory is moved into the fixture root for the duration of the
// run and restored on every exit path.
func (r *Runner) Run() error {
	restore, err := EnterDir(r.catalog.Root)
	if err != nil {
		return err
	}
	defer restore()

	if err := r.runBinaries(); err != nil {
		return err
	}
	if err := r.runManifests(); err != nil {
		return err
	}
	if err := r.augmentPath(); err != nil {
		return err
	}
	if err := r.runTraces(); err != nil {
		return err
	}
	logger.Infof("all fixture suites passed")
	return nil
}

// runBinaries activates the general manifest once, then builds and
// resolve-invokes every binary fixture. Build and resolve failures are
// tolerated; only a missing expectation aborts.
func (r *Runner) runBinaries() error {
	general, ok := r.catalog.Manifest(GeneralManifest)
	if !ok {
		return fmt.Errorf("manifest fixture %q not found under %s", GeneralManifest, r.catalog.Root)
	}
	if err := r.switcher.Activate(general); err != nil {
		return err
	}

	for _, bin := range r.filtered(r.catalog.Binaries) {
		logger.Infof("resolving %s", bin)
		expected, err := r.catalog.ExpectedOutput(bin)
		if err != nil {
			return err
		}
		r.builder.Build(bin.Name)
		res := r.resolve(bin.Name)
		if err := Match(bin.String(), res.Output, expected); err != nil {
			return err
		}
	}
	return nil
}

// runManifests activates each manifest fixture in turn and resolve-invokes
// the fixed target against it. There is no build step: the target is
// expected to be buildable from a prior compatible state, or the tool
// handles staleness itself.
func (r *Runner) runManifests() error {
	for _, m := range r.filtered(r.catalog.Manifests) {
		logger.Infof("resolving %s against %s", r.opts.ResolveBin, m)
		expected, err := r.catalog.ExpectedOutput(m)
		if err != nil {
			return err
		}
		if err := r.switcher.Activate(m); err != nil {
			return err
		}
		res := r.resolve(r.opts.ResolveBin)
		if err := Match(m.String(), res.Output, expected); err != nil {
			return err
		}
	}
	return nil
}

// runTraces replays each trace fixture. Unlike the resolve suites a nonzero
// exit is fatal here, before any matching: replaying a well-formed trace
// must succeed, so failure means a broken fixture or environment.
func (r *Runner) runTraces() error {
	for _, tr := range r.filtered(r.catalog.Traces) {
		logger.Infof("replaying %s", tr)
		expected, err := r.catalog.ExpectedOutput(tr)
		if err != nil {
			return err
		}
		rel := filepath.Join("traces", filepath.Base(tr.Path))
		res := r.opts.Invoker.Run(Invocation{
			Bin:  r.opts.Tool,
			Args: []string{"replay", "--trace-file", rel},
			Dir:  r.catalog.Root,
		})
		if res.Err != nil {
			return fmt.Errorf("failed to replay trace %s: %w", tr.Name, res.Err)
		}
		if res.ExitCode != 0 {
			logger.Errorf("replay output:\n%s", res.Output)
			return &ReplayFailedError{Trace: tr.Name, ExitCode: res.ExitCode}
		}
		if err := Match(tr.String(), res.Output, expected); err != nil {
			return err
		}
	}
	return nil
}

// resolve invokes the tool in resolve-only mode. A nonzero exit is
// tolerated: unresolved or ambiguous targets are themselves behaviors under
// test, reported through diagnostics that the expectations match against.
func (r *Runner) resolve(bin string) Captured {
	res := r.opts.Invoker.Run(Invocation{
		Bin:  r.opts.Tool,
		Args: []string{"trace", "--resolve-only", "--bin", bin},
		Dir:  r.catalog.Root,
	})
	if res.Err != nil {
		logger.V(4).Infof("resolve of %s failed to spawn (tolerated): %v", bin, res.Err)
	} else if res.ExitCode != 0 {
		logger.V(4).Infof("resolve of %s exited with code %d (tolerated)", bin, res.ExitCode)
	}
	return res
}

// augmentPath prepends the installed-tool bin directory to PATH so that
// replay can locate whatever the tool shells out to. The inherited PATH is
// kept; nothing is replaced, and an already-present directory is not added
// twice.
func (r *Runner) augmentPath() error {
	dir := r.opts.ToolBinDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve tool bin directory: %w", err)
		}
		dir = filepath.Join(home, ".cargo", "bin")
	}
	path := os.Getenv("PATH")
	if lo.Contains(filepath.SplitList(path), dir) {
		return nil
	}
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+path); err != nil {
		return fmt.Errorf("failed to augment PATH: %w", err)
	}
	logger.V(4).Infof("prepended %s to PATH", dir)
	return nil
}

func (r *Runner) filtered(all []fixtures.Fixture) []fixtures.Fixture {
	if r.opts.Filter == "" {
		return all
	}
	return lo.Filter(all, func(f fixtures.Fixture, _ int) bool {
		ok, err := doublestar.Match(r.opts.Filter, f.Name)
		if err != nil {
			logger.Warnf("invalid filter %q: %v", r.opts.Filter, err)
			return true
		}
		return ok
	})
}
