package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tongue/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the diagnostics cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached check result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("tongue")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleaned")
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
