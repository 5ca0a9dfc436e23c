// Opsdeck is a terminal dashboard for operating platform nodes.
//
// It drives identity, contract, and document operations plus scripted
// load-test strategies against a node's websocket operations endpoint.
// Nodes are found via mDNS discovery or configured manually.
//
// Usage:
//
//	opsdeck [command] [flags]
//
// Running without arguments launches the dashboard.
// See 'opsdeck --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opsdeck",
	Short: "Platform Operations Dashboard",
	Long: `A terminal dashboard for operating platform nodes.

Register and fund identities, register data contracts, broadcast
document operations, and run scripted load-test strategies against a
node's operations endpoint.

If no command is specified, the dashboard launches automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("opsdeck %s (commit: %s)\n", version.Version, version.Commit)
	},
}
