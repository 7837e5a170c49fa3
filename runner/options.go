package runner

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// RunnerOption configures a Runner at creation time.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	diskCache        bool
	cacheDir         string
	memoryLimitPages uint32
	log              *zap.Logger
}

func defaultRunnerConfig() runnerConfig {
	return runnerConfig{
		log: zap.NewNop(),
	}
}

// WithDiskCache enables a persistent compilation cache so repeated CLI
// invocations skip recompiling guests. Optionally provide a directory;
// the default follows XDG_CACHE_HOME, then ~/.cache/optpack.
func WithDiskCache(dir ...string) RunnerOption {
	return func(c *runnerConfig) {
		c.diskCache = true
		if len(dir) > 0 && dir[0] != "" {
			c.cacheDir = dir[0]
		}
	}
}

// WithMemoryLimit caps guest memory in 64KB pages. Zero means the wazero
// default (4GB).
func WithMemoryLimit(pages uint32) RunnerOption {
	return func(c *runnerConfig) {
		c.memoryLimitPages = pages
	}
}

// WithLogger attaches a structured logger for compile and run events.
func WithLogger(log *zap.Logger) RunnerOption {
	return func(c *runnerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Memory limit constants for convenience.
const (
	MemoryLimit1MB   uint32 = 16
	MemoryLimit16MB  uint32 = 256
	MemoryLimit64MB  uint32 = 1024
	MemoryLimit256MB uint32 = 4096
)

// Mount maps a host directory into the guest's filesystem.
type Mount struct {
	GuestPath string
	HostPath  string
	ReadOnly  bool
}

// Option configures a single Run call.
type Option func(*runConfig)

type runConfig struct {
	timeout time.Duration
	args    []string
	env     map[string]string
	mounts  []Mount
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
}

func defaultRunConfig() runConfig {
	return runConfig{
		timeout: 30 * time.Second,
		env:     make(map[string]string),
		stderr:  os.Stderr,
	}
}

// WithTimeout sets the maximum run time. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(c *runConfig) {
		c.timeout = d
	}
}

// WithArgs passes command-line arguments to the guest (argv[1:]).
func WithArgs(args ...string) Option {
	return func(c *runConfig) {
		c.args = append(c.args, args...)
	}
}

// WithEnv sets an environment variable visible to the guest.
func WithEnv(key, value string) Option {
	return func(c *runConfig) {
		c.env[key] = value
	}
}

// WithMount exposes a host directory to the guest.
//
// Examples:
//
//	runner.WithMount("/data", "./instances", true)   // read-only
//	runner.WithMount("/out", "./results", false)     // read-write
func WithMount(guestPath, hostPath string, readOnly bool) Option {
	return func(c *runConfig) {
		c.mounts = append(c.mounts, Mount{
			GuestPath: guestPath,
			HostPath:  hostPath,
			ReadOnly:  readOnly,
		})
	}
}

// WithStdout redirects guest stdout; Result.Output is empty when set.
func WithStdout(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr redirects guest stderr (default: the process stderr).
func WithStderr(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// WithStdin supplies guest stdin (default: none).
func WithStdin(r io.Reader) Option {
	return func(c *runConfig) {
		c.stdin = r
	}
}
