package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/optpack/optpack/instance"
	"github.com/optpack/optpack/solver"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive solver REPL",
	Long: `Start an interactive solver session.

Commands:
  solve <capacity> <w:v> [w:v ...]   Solve an inline instance
  load <file>                        Solve an instance file (json/yaml/csv)
  compare                            Toggle the greedy baseline line
  help                               Show this list

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
	Run: runRepl,
}

func init() {
	replCmd.Flags().String("history", "", "History file path (default: ~/.optpack_history)")
	rootCmd.AddCommand(replCmd)
}

// parseItems converts w:v tokens into parallel weight and value slices.
func parseItems(tokens []string) ([]int32, []int32, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("no items given (expected w:v tokens)")
	}

	weights := make([]int32, 0, len(tokens))
	values := make([]int32, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("invalid item %q (expected weight:value)", tok)
		}
		w, err := strconv.ParseInt(parts[0], 10, 32)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid weight in %q: %v", tok, err)
		}
		v, err := strconv.ParseInt(parts[1], 10, 32)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid value in %q: %v", tok, err)
		}
		weights = append(weights, int32(w))
		values = append(values, int32(v))
	}
	return weights, values, nil
}

// evalLine executes one REPL line against w. It returns the new compare
// state and false when the session should end. Solves go through cache
// so re-running a line is instant.
func evalLine(w io.Writer, cache *solver.Cache, line string, compare bool) (bool, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return compare, true
	}

	switch fields[0] {
	case "exit", "quit":
		return compare, false

	case "help":
		fmt.Fprintln(w, "commands: solve <capacity> <w:v> [w:v ...] | load <file> | compare | help | exit")

	case "compare":
		compare = !compare
		if compare {
			fmt.Fprintln(w, "greedy baseline on")
		} else {
			fmt.Fprintln(w, "greedy baseline off")
		}

	case "solve":
		if len(fields) < 2 {
			fmt.Fprintln(w, "usage: solve <capacity> <w:v> [w:v ...]")
			return compare, true
		}
		capacity, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			fmt.Fprintf(w, "invalid capacity %q: %v\n", fields[1], err)
			return compare, true
		}
		weights, values, err := parseItems(fields[2:])
		if err != nil {
			fmt.Fprintln(w, err)
			return compare, true
		}
		inst := &instance.Instance{Weights: weights, Values: values, Capacity: int32(capacity)}
		if err := writeSolveReport(w, cache, inst, compare, false); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}

	case "load":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: load <file>")
			return compare, true
		}
		inst, err := instance.Load(fields[1])
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return compare, true
		}
		if err := writeSolveReport(w, cache, inst, compare, false); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}

	default:
		fmt.Fprintf(w, "unknown command %q (try 'help')\n", fields[0])
	}

	return compare, true
}

func runRepl(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".optpack_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">>> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "optpack REPL (type 'help' for commands, Ctrl+D to exit)")

	cache := solver.NewCache()
	compare := false
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		var keepGoing bool
		compare, keepGoing = evalLine(os.Stdout, cache, strings.TrimSpace(line), compare)
		if !keepGoing {
			break
		}
	}
}
