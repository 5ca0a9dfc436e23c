package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/opsdeck/opsdeck/internal/backend"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/discovery"
	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/tui"
)

// Dashboard command flags
var (
	nodeEndpoint string
	localMode    bool
	scanTimeout  int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&nodeEndpoint, "node", "", "Node websocket endpoint (skips discovery, e.g. ws://192.168.1.40:9443/ops)")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Run against the built-in loopback executor (no node required)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// scanCmd discovers platform nodes on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for platform nodes on the network",
	Long: `Scan for platform nodes using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from platform nodes and displays
all discovered nodes with their endpoints, networks, and metadata.
Discovered nodes are recorded in the registry for later sessions.`,
	Example: `  # Scan for 10 seconds (default)
  opsdeck scan

  # Quick 3-second scan
  opsdeck scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for platform nodes (timeout: %ds)...\n\n", scanTimeout)

	nodes, err := discovery.ScanForNodes(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(nodes) == 0 {
		fmt.Println("No nodes found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure at least one node is running on this network")
		fmt.Println("  - Check that mDNS traffic is not blocked")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --node to specify an endpoint manually")
		return nil
	}

	fmt.Printf("Found %d node(s):\n\n", len(nodes))

	for i, node := range nodes {
		fmt.Printf("%d. %s\n", i+1, node.Name)
		fmt.Printf("   Endpoint: %s\n", node.Endpoint())
		if node.Network != "" {
			fmt.Printf("   Network:  %s\n", node.Network)
		}
		if len(node.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", node.Metadata)
		}
		fmt.Println()
	}

	// Record what we found so the dashboard offers it without rescanning.
	reg, err := config.LoadRegistry()
	if err == nil {
		for _, node := range nodes {
			reg.RecordNode(node.Name, node.Endpoint(), node.Network)
		}
		if err := reg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save registry: %v\n", err)
		}
	}

	fmt.Println("Use 'opsdeck --node <endpoint>' to connect directly")
	fmt.Println("Use 'opsdeck' to launch the dashboard")

	return nil
}

// dashboardCmd launches the interactive dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides screens for:
- Discovering and selecting platform nodes
- Registering and funding identities
- Registering data contracts
- Broadcasting document operations
- Running scripted load-test strategies`,
	Example: `  # Launch with the registry's default node
  opsdeck dashboard
  # Or simply (dashboard is default):
  opsdeck

  # Launch against a specific node
  opsdeck dashboard --node ws://192.168.1.40:9443/ops

  # Launch with the loopback executor for a dry run
  opsdeck dashboard --local`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("opsdeck requires an interactive terminal")
	}
	if width, _, err := term.GetSize(fd); err == nil && width < tui.MinTerminalWidth {
		return fmt.Errorf("terminal too narrow: %d columns (minimum %d)", width, tui.MinTerminalWidth)
	}

	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	dispatcher := backend.NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	endpoint := resolveEndpoint(reg)
	switch {
	case localMode || endpoint == "":
		logging.Info("starting loopback executor")
		go dispatcher.Loopback(ctx)
	default:
		logging.Info("connecting to node", zap.String("endpoint", endpoint))
		go backend.NewClient(endpoint, dispatcher).Run(ctx)
	}

	hist := tui.NewHistories(reg)
	deps := &tui.Deps{
		Dispatcher: dispatcher,
		Registry:   reg,
		Histories:  hist,
	}
	app := tui.NewApp(deps, tui.NewMenuScreen(deps))

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	// Persist completion history and any nodes recorded during the session.
	hist.Persist(reg)
	if err := reg.Save(); err != nil {
		logging.Warn("failed to save registry", zap.Error(err))
	}

	return nil
}

// resolveEndpoint picks the websocket endpoint to drive: the --node flag
// wins, then the registry's default node. Empty means no node is known
// and the loopback executor takes over.
func resolveEndpoint(reg *config.Registry) string {
	if nodeEndpoint != "" {
		return nodeEndpoint
	}
	if prefs := reg.Preferences; prefs != nil && prefs.DefaultNode != "" {
		if node := reg.GetNode(prefs.DefaultNode); node != nil {
			return node.Endpoint
		}
	}
	return ""
}
