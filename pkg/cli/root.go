// Package cli implements the mockhub command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockhub",
	Short: "mockhub is a multi-tenant HTTP mock server",
	Long: `mockhub serves canned, templated HTTP responses for configured projects.

Each project is a tenant addressed by its slug: requests to
/{project}/... (or /{team}/{project}/... for team projects) are matched
against the project's endpoint rules and answered with rendered mock
responses, optionally after a simulated delay. Served requests are
recorded and can be inspected or streamed live through the admin API
under /api.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	initServeCmd()
	initVersionCmd()
}
