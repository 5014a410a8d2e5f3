package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Persistent flags
var (
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pgqbgen",
	Short: "Generate pgqb table declarations from a YAML schema",
	Long: `pgqbgen - schema tooling for pgqb

pgqbgen reads a YAML description of tables and enumerated types and
renders it as a Go package of pgqb declarations, so statements are built
against generated, typo-proof column and table values.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		switch {
		case quiet:
			level = slog.LevelError
		case verbose > 0:
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(ddlCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgqbgen:", err)
		os.Exit(1)
	}
}
