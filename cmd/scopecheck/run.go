package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rtic-scope/scopecheck/harness"
)

var runOpts struct {
	fixtures   string
	resolveBin string
	toolBinDir string
	filter     string
	configFile string
}

var runCmd = &cobra.Command{
	Use:   "run <tool-binary>",
	Short: "Run the resolve and replay fixture suites against a trace tool build",
	Long: `Runs three suites in order against the given tool binary: per-binary
resolve, per-manifest resolve, and per-trace replay. Every line of the
matching out/*.run file must appear as a literal substring of the tool's
combined output. The first unmet expectation aborts the whole run.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runHarness,
}

func runHarness(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runOpts.configFile)
	if err != nil {
		return err
	}
	cfg.apply(cmd)

	tool, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve tool path %q: %w", args[0], err)
	}
	if _, err := os.Stat(tool); err != nil {
		return fmt.Errorf("tool binary: %w", err)
	}

	runner, err := harness.NewRunner(harness.Options{
		Tool:        tool,
		FixtureRoot: runOpts.fixtures,
		ResolveBin:  runOpts.resolveBin,
		ToolBinDir:  runOpts.toolBinDir,
		Filter:      runOpts.filter,
	})
	if err != nil {
		return err
	}
	return runner.Run()
}

func init() {
	runCmd.Flags().StringVar(&runOpts.fixtures, "fixtures", "fixtures", "fixture crate root")
	runCmd.Flags().StringVar(&runOpts.resolveBin, "resolve-bin", harness.GeneralManifest, "binary target the manifest suite resolves against")
	runCmd.Flags().StringVar(&runOpts.toolBinDir, "tool-bin-dir", "", "directory of installed tool binaries prepended to PATH for replay (default $HOME/.cargo/bin)")
	runCmd.Flags().StringVar(&runOpts.filter, "filter", "", "glob restricting which fixture names run")
	runCmd.Flags().StringVar(&runOpts.configFile, "config", "", "YAML config file providing flag defaults (default scopecheck.yaml if present)")
	rootCmd.AddCommand(runCmd)
}
