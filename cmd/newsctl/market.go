package main

import (
	"fmt"

	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/spf13/cobra"
)

// marketCmd prints the current market snapshot.
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Print the market indicator snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		snapshot, err := a.Market.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), snapshot)
	},
}

// sectorsCmd lists the tracked sectors.
var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List tracked sectors",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range sector.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s, s.Label())
		}
	},
}

func init() {
	rootCmd.AddCommand(marketCmd, sectorsCmd)
}
