package main

import (
	"errors"
	"fmt"

	"github.com/JayDad/energy-insight-ui/internal/news"
	"github.com/spf13/cobra"
)

var refreshSector string

// refreshCmd fetches and stores news for one or all sectors.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch fresh news and persist it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Refresher == nil {
			return news.ErrMissingAPIKey
		}

		var sectors []string
		if refreshSector != "" {
			sectors = []string{refreshSector}
		}
		report := a.Refresher.Run(cmd.Context(), sectors)
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !report.OK {
			return errors.New("refresh finished with failures")
		}
		return nil
	},
}

// cleanupCmd removes news older than the retention window.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stored news past the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		deleted, err := a.Store.DeleteOldNews(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", deleted)
		return nil
	},
}

func init() {
	refreshCmd.Flags().StringVar(&refreshSector, "sector", "", "refresh a single sector (default: all)")
	rootCmd.AddCommand(refreshCmd, cleanupCmd)
}
