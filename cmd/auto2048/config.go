package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and global flags
were applied, as YAML. The output is a valid config file.

Search order:
  1. --config <path>
  2. ~/.auto2048/config.yaml
  3. ./configs/auto2048.yaml
  4. built-in defaults

Examples:
  auto2048 config
  auto2048 config > ~/.auto2048/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		exitf("encoding config: %v", err)
	}
	if err := enc.Close(); err != nil {
		exitf("encoding config: %v", err)
	}
}
