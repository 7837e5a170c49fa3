// Package runner executes WASM guest modules with the solver host module
// wired into their import space.
//
// A Runner owns one wazero runtime with WASI and the "env" knapsack
// contract instantiated. Guests are compiled once per path and cached;
// an optional disk cache persists compilations across processes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/optpack/optpack/abi"
)

// Result holds the output and metadata from one guest run.
type Result struct {
	Output   string
	Duration time.Duration
	Error    error
}

// Runner manages the runtime, the solver host module, and compiled guest
// caching. Safe for concurrent Run calls.
type Runner struct {
	runtime  wazero.Runtime
	cache    wazero.CompilationCache
	host     api.Closer
	compiled map[string]wazero.CompiledModule
	log      *zap.Logger
	mu       sync.RWMutex
	closed   bool
}

// New creates a Runner with WASI and the knapsack host module available
// to guests.
func New(opts ...RunnerOption) (*Runner, error) {
	cfg := defaultRunnerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()

	var cache wazero.CompilationCache
	if cfg.diskCache {
		dir := cfg.cacheDir
		if dir == "" {
			dir = defaultCacheDir()
		}
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(dir)
		if err != nil {
			return nil, fmt.Errorf("create disk cache: %w", err)
		}
	}

	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cache != nil {
		rtConfig = rtConfig.WithCompilationCache(cache)
	}
	if cfg.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		closeAll(ctx, rt, cache)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}

	host, err := abi.Instantiate(ctx, rt)
	if err != nil {
		closeAll(ctx, rt, cache)
		return nil, fmt.Errorf("instantiate solver host module: %w", err)
	}

	return &Runner{
		runtime:  rt,
		cache:    cache,
		host:     host,
		compiled: make(map[string]wazero.CompiledModule),
		log:      cfg.log,
	}, nil
}

// Run executes the guest module at path until its _start returns. Stdout
// is captured into Result.Output unless redirected with WithStdout.
func (r *Runner) Run(ctx context.Context, path string, opts ...Option) Result {
	start := time.Now()

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	compiled, err := r.getCompiled(ctx, path)
	if err != nil {
		return Result{Error: err, Duration: time.Since(start)}
	}

	var stdout bytes.Buffer
	moduleConfig := wazero.NewModuleConfig().
		WithStdout(&stdout).
		WithStderr(cfg.stderr).
		WithArgs(append([]string{filepath.Base(path)}, cfg.args...)...).
		WithName("")
	if cfg.stdout != nil {
		moduleConfig = moduleConfig.WithStdout(cfg.stdout)
	}
	if cfg.stdin != nil {
		moduleConfig = moduleConfig.WithStdin(cfg.stdin)
	}
	for k, v := range cfg.env {
		moduleConfig = moduleConfig.WithEnv(k, v)
	}
	if len(cfg.mounts) > 0 {
		fsCfg := wazero.NewFSConfig()
		for _, m := range cfg.mounts {
			if m.ReadOnly {
				fsCfg = fsCfg.WithReadOnlyDirMount(m.HostPath, m.GuestPath)
			} else {
				fsCfg = fsCfg.WithDirMount(m.HostPath, m.GuestPath)
			}
		}
		moduleConfig = moduleConfig.WithFSConfig(fsCfg)
	}

	mod, err := r.runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if mod != nil {
		mod.Close(context.Background())
	}

	result := Result{
		Output:   stdout.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *sys.ExitError
		switch {
		case errors.As(err, &exitErr) && exitErr.ExitCode() == 0:
			// Normal exit through proc_exit(0).
		case ctx.Err() == context.DeadlineExceeded:
			result.Error = fmt.Errorf("timeout after %v", cfg.timeout)
		default:
			result.Error = fmt.Errorf("guest failed: %w", err)
		}
	}

	r.log.Debug("guest run finished",
		zap.String("path", path),
		zap.Duration("duration", result.Duration),
		zap.Bool("ok", result.Error == nil))

	return result
}

// getCompiled returns the cached compiled module for path, compiling on
// first use.
func (r *Runner) getCompiled(ctx context.Context, path string) (wazero.CompiledModule, error) {
	r.mu.RLock()
	if compiled, ok := r.compiled[path]; ok {
		r.mu.RUnlock()
		return compiled, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if compiled, ok := r.compiled[path]; ok {
		return compiled, nil
	}
	if r.closed {
		return nil, errors.New("runner closed")
	}

	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guest: %w", err)
	}

	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	r.log.Debug("compiled guest", zap.String("path", path), zap.Int("bytes", len(wasm)))

	r.compiled[path] = compiled
	return compiled, nil
}

// Close releases the runtime, host module, and compilation cache.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	ctx := context.Background()

	var errs []error
	if r.host != nil {
		if err := r.host.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.runtime.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if r.cache != nil {
		if err := r.cache.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func closeAll(ctx context.Context, rt wazero.Runtime, cache wazero.CompilationCache) {
	rt.Close(ctx)
	if cache != nil {
		cache.Close(ctx)
	}
}

func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "optpack")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "optpack")
	}
	return filepath.Join(os.TempDir(), "optpack-cache")
}
