package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optpack/optpack/runner"
)

var runCmd = &cobra.Command{
	Use:   "run <guest.wasm> [args...]",
	Short: "Run a WASM guest with the solver host module",
	Long: `Execute a WebAssembly guest module. The guest sees WASI plus the
env.knapsack and env.knapsack_greedy host functions, so it can solve
instances held in its own linear memory.

Arguments after the module path are passed to the guest as argv[1:].`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().Duration("timeout", 30*time.Second, "Execution timeout")
	runCmd.Flags().StringSlice("mount", nil, "Mount filesystem guest:host:mode (repeatable, mode ro or rw)")
	runCmd.Flags().String("memory", "", "Memory limit: 1mb, 16mb, 64mb, 256mb")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	mounts, _ := cmd.Flags().GetStringSlice("mount")
	memoryLimit, _ := cmd.Flags().GetString("memory")
	noCache, _ := cmd.Root().PersistentFlags().GetBool("no-cache")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	var runnerOpts []runner.RunnerOption
	if !noCache {
		runnerOpts = append(runnerOpts, runner.WithDiskCache())
	}
	if pages := parseMemoryLimit(memoryLimit); pages > 0 {
		runnerOpts = append(runnerOpts, runner.WithMemoryLimit(pages))
	}
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			defer log.Sync()
			runnerOpts = append(runnerOpts, runner.WithLogger(log))
		}
	}

	r, err := runner.New(runnerOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	runOpts := []runner.Option{
		runner.WithTimeout(timeout),
		runner.WithStdout(os.Stdout),
	}
	if len(args) > 1 {
		runOpts = append(runOpts, runner.WithArgs(args[1:]...))
	}
	for _, spec := range mounts {
		m, err := parseMount(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runOpts = append(runOpts, runner.WithMount(m.GuestPath, m.HostPath, m.ReadOnly))
	}

	result := r.Run(context.Background(), args[0], runOpts...)
	if result.Error != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Error)
		os.Exit(1)
	}
}
