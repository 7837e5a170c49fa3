package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optpack/optpack/runner"
)

var rootCmd = &cobra.Command{
	Use:   "optpack",
	Short: "Exact 0/1 knapsack solver with a WASM foreign-call boundary",
	Long: `optpack - Solve 0/1 knapsack instances and host the solver for WASM guests.

Instances load from JSON, YAML, or CSV files. The solver is also exported
to WebAssembly guests as the env.knapsack host function, so compiled
programs can call it from their own linear memory.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the guest compilation cache")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func parseMount(spec string) (runner.Mount, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return runner.Mount{}, fmt.Errorf("invalid mount spec %q (expected guest:host:mode)", spec)
	}

	var readOnly bool
	switch parts[2] {
	case "ro":
		readOnly = true
	case "rw":
		readOnly = false
	default:
		return runner.Mount{}, fmt.Errorf("invalid mount mode %q (expected ro or rw)", parts[2])
	}

	return runner.Mount{
		GuestPath: parts[0],
		HostPath:  parts[1],
		ReadOnly:  readOnly,
	}, nil
}

func parseMemoryLimit(s string) uint32 {
	switch strings.ToLower(s) {
	case "1mb":
		return runner.MemoryLimit1MB
	case "16mb":
		return runner.MemoryLimit16MB
	case "64mb":
		return runner.MemoryLimit64MB
	case "256mb":
		return runner.MemoryLimit256MB
	default:
		return 0 // use default
	}
}
