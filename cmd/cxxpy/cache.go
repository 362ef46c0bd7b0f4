package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cxxpy/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the disk cache of lowered files",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every cached result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("cxxpy")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %s: %w", cache.Dir(), err)
		}
		if !quietFlag(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
