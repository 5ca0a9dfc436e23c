package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/node"
)

// Simulated node flags
var (
	nodePort    int
	nodeName    string
	nodeNetwork string
	noAdvertise bool
	nodeLog     string
)

func init() {
	nodeCmd.Flags().IntVar(&nodePort, "port", 9443, "Operations port to listen on (0 picks a free port)")
	nodeCmd.Flags().StringVar(&nodeName, "name", "opsdeck-sim", "Advertised instance name")
	nodeCmd.Flags().StringVar(&nodeNetwork, "network", "devnet", "Advertised network name")
	nodeCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Skip the mDNS advertisement")
	nodeCmd.Flags().StringVar(&nodeLog, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(nodeCmd)
}

// nodeCmd runs the simulated platform node
var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run a simulated platform node",
	Long: `Run a simulated platform node for dashboard development.

The simulator serves the operations websocket endpoint, answers every
task with a plausible result, and advertises itself over mDNS so the
dashboard's node screen discovers it like a real node. It holds no
real platform state.`,
	Example: `  # Run on the default port and advertise on the LAN
  opsdeck node

  # Run quietly on a fixed port without mDNS
  opsdeck node --port 9500 --no-advertise

  # Point a dashboard at it
  opsdeck --node ws://127.0.0.1:9443/ops`,
	RunE: runNode,
}

func runNode(cmd *cobra.Command, args []string) error {
	srv, err := node.New(&node.Config{
		Port:      nodePort,
		Name:      nodeName,
		Network:   nodeNetwork,
		Advertise: !noAdvertise,
		LogLevel:  nodeLog,
	})
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Printf("Simulated node %q listening on %s\n", nodeName, srv.Addr())
	fmt.Printf("Operations endpoint: %s\n", srv.Endpoint())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
