package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cxxpy/internal/config"
)

// loadConfig honours --config, otherwise looks for cxxpy.toml above dir.
func loadConfig(cmd *cobra.Command, dir string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(dir)
}
