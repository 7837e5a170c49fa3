package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optpack/optpack/solver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP API for the solver",
	Long: `Start an HTTP server exposing the solver.

Endpoints:
  POST /v1/solve   Solve an instance, optionally with the greedy baseline
  GET  /health     Health check

Repeated instances hit an in-process result cache.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Int("cache-entries", solver.DefaultMaxCacheEntries, "Solved-instance cache size (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

type solveRequest struct {
	Weights  []int32 `json:"weights"`
	Values   []int32 `json:"values"`
	Capacity int32   `json:"capacity"`
	Compare  bool    `json:"compare,omitempty"`
}

type solveResponse struct {
	Total           int32   `json:"total"`
	Selection       []int32 `json:"selection"`
	SelectedIndices []int   `json:"selected_indices"`
	WeightUsed      int64   `json:"weight_used"`
	GreedyTotal     *int32  `json:"greedy_total,omitempty"`
	DurationMs      int64   `json:"duration_ms"`
}

type server struct {
	cache *solver.Cache
	log   *zap.Logger
}

func newServer(cacheEntries int, log *zap.Logger) *server {
	var cache *solver.Cache
	if cacheEntries > 0 {
		cache = solver.NewCache(solver.WithMaxEntries(cacheEntries))
	}
	return &server{cache: cache, log: log}
}

func (s *server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/solve", s.handleSolve)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	start := time.Now()
	selection := make([]int32, len(req.Weights))

	var total int32
	var err error
	if s.cache != nil {
		total, err = s.cache.Solve(req.Weights, req.Values, req.Capacity, selection)
	} else {
		total, err = solver.Solve(req.Weights, req.Values, req.Capacity, selection)
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, solver.ErrOutOfRange) {
			status = http.StatusUnprocessableEntity
		}
		s.log.Warn("solve rejected",
			zap.Int("items", len(req.Weights)),
			zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	resp := solveResponse{
		Total:      total,
		Selection:  selection,
		DurationMs: time.Since(start).Milliseconds(),
	}
	resp.SelectedIndices = make([]int, 0, len(selection))
	for i, flag := range selection {
		if flag == 1 {
			resp.SelectedIndices = append(resp.SelectedIndices, i)
			resp.WeightUsed += int64(req.Weights[i])
		}
	}

	if req.Compare {
		greedySelection := make([]int32, len(req.Weights))
		greedyTotal, err := solver.Greedy(req.Weights, req.Values, req.Capacity, greedySelection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp.GreedyTotal = &greedyTotal
	}

	s.log.Info("solve",
		zap.Int("items", len(req.Weights)),
		zap.Int32("capacity", req.Capacity),
		zap.Int32("total", total),
		zap.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func runServe(cmd *cobra.Command, args []string) {
	port, _ := cmd.Flags().GetInt("port")
	cacheEntries, _ := cmd.Flags().GetInt("cache-entries")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	var log *zap.Logger
	var err error
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	srv := newServer(cacheEntries, log)

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(os.Stderr, "optpack server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, srv.mux()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
