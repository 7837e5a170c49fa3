package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/optpack/optpack/instance"
	"github.com/optpack/optpack/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve <instance-file>",
	Short: "Solve a knapsack instance from a file",
	Long: `Solve a 0/1 knapsack instance loaded from a JSON, YAML, or CSV file.

Prints the optimal total value, the selected item indices, and the
weight used. With --compare the greedy density heuristic runs on the
same instance so the two totals can be compared.`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().Bool("compare", false, "Also run the greedy heuristic and print its total")
	solveCmd.Flags().BoolP("quiet", "q", false, "Print the optimal total only")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) {
	compare, _ := cmd.Flags().GetBool("compare")
	quiet, _ := cmd.Flags().GetBool("quiet")

	inst, err := instance.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeSolveReport(os.Stdout, nil, inst, compare, quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeSolveReport solves inst and writes the human-readable report to w.
// A non-nil cache answers repeated instances without re-running the DP.
func writeSolveReport(w io.Writer, cache *solver.Cache, inst *instance.Instance, compare, quiet bool) error {
	var total int32
	var selection []int32
	var err error
	if cache != nil {
		selection = make([]int32, inst.Len())
		total, err = cache.Solve(inst.Weights, inst.Values, inst.Capacity, selection)
	} else {
		total, selection, err = inst.Solve()
	}
	if err != nil {
		return err
	}

	if quiet {
		fmt.Fprintln(w, total)
		return nil
	}

	var indices []int
	var weightUsed int64
	for i, flag := range selection {
		if flag == 1 {
			indices = append(indices, i)
			weightUsed += int64(inst.Weights[i])
		}
	}

	fmt.Fprintf(w, "items:    %d\n", inst.Len())
	fmt.Fprintf(w, "capacity: %d\n", inst.Capacity)
	fmt.Fprintf(w, "total:    %d\n", total)
	fmt.Fprintf(w, "weight:   %d/%d\n", weightUsed, inst.Capacity)
	fmt.Fprintf(w, "selected: %v\n", indices)

	if compare {
		greedyTotal, _, err := inst.Greedy()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "greedy:   %d\n", greedyTotal)
	}
	return nil
}
