// Command swapsim drives the swap subsystem outside a real kernel: it
// wires internal/mem, internal/blockdev, internal/addrspace and
// internal/proctab's reference implementations together, runs the
// canonical scenarios of spec section 8 (run), and serves Prometheus
// metrics for a continuous pressure-check loop (serve).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swapsim",
		Short: "Demand-paging swap subsystem simulator",
	}
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}
