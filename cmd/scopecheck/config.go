package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "scopecheck.yaml"

// config mirrors the run command's flags. A config file supplies defaults;
// flags set explicitly on the command line always win.
type config struct {
	Fixtures   string `yaml:"fixtures,omitempty"`
	ResolveBin string `yaml:"resolveBin,omitempty"`
	ToolBinDir string `yaml:"toolBinDir,omitempty"`
	Filter     string `yaml:"filter,omitempty"`
}

// loadConfig reads the config file at path, or the default file when path is
// empty. A missing default file is not an error; a missing explicit file is.
func loadConfig(path string) (config, error) {
	var cfg config
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) apply(cmd *cobra.Command) {
	if c.Fixtures != "" && !cmd.Flags().Changed("fixtures") {
		runOpts.fixtures = c.Fixtures
	}
	if c.ResolveBin != "" && !cmd.Flags().Changed("resolve-bin") {
		runOpts.resolveBin = c.ResolveBin
	}
	if c.ToolBinDir != "" && !cmd.Flags().Changed("tool-bin-dir") {
		runOpts.toolBinDir = c.ToolBinDir
	}
	if c.Filter != "" && !cmd.Flags().Changed("filter") {
		runOpts.filter = c.Filter
	}
}
