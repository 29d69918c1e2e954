package terraform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/opsdash/deployctl/internal/env"
	"github.com/opsdash/deployctl/internal/logging"
)

const (
	defaultBinary   = "terraform"
	defaultPlanFile = "tfplan"

	// initMarkerDir is the directory the tool creates on init. Its presence
	// is the sole source for AvailabilityInfo.Initialized.
	initMarkerDir = ".terraform"

	// waitDelay bounds how long we wait for output pipes after the process
	// is killed, so an inherited descriptor cannot stall a timed-out run.
	waitDelay = 5 * time.Second
)

// Options configures an Orchestrator. WorkDir is required; everything else
// has defaults.
type Options struct {
	// WorkDir is the directory holding the tool's declarative configuration.
	WorkDir string
	// Binary is the tool executable name or path. Defaults to "terraform".
	Binary string
	// PlanFile is the plan artifact filename within WorkDir. Defaults to "tfplan".
	PlanFile string
	// Timeouts bounds each operation class; zero fields use defaults.
	Timeouts Timeouts
	// Env holds extra environment variables for the subprocess, merged over
	// the current process environment.
	Env map[string]string
	// Logger receives operation progress; defaults to slog.Default().
	Logger *slog.Logger
}

// Orchestrator runs a fixed external command line per operation inside a
// fixed working directory and translates process results into the
// ExecutionResult/StateSnapshot/OutputSet/AvailabilityInfo contracts. It is
// stateless between invocations; all state lives in the tool's on-disk
// files.
type Orchestrator struct {
	workDir  string
	binary   string
	planFile string
	timeouts Timeouts
	extraEnv []string
	logger   *slog.Logger
}

// New constructs an Orchestrator for the given working directory.
func New(opts Options) (*Orchestrator, error) {
	if strings.TrimSpace(opts.WorkDir) == "" {
		return nil, fmt.Errorf("working directory is required")
	}
	workDir, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory %q: %w", opts.WorkDir, err)
	}

	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = defaultBinary
	}
	planFile := strings.TrimSpace(opts.PlanFile)
	if planFile == "" {
		planFile = defaultPlanFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keys := env.SortedKeys(opts.Env)
	extraEnv := make([]string, 0, len(keys)+1)
	// Tells terraform-compatible tools to skip interactive hints and color.
	extraEnv = append(extraEnv, "TF_IN_AUTOMATION=1")
	for _, k := range keys {
		extraEnv = append(extraEnv, k+"="+opts.Env[k])
	}

	return &Orchestrator{
		workDir:  workDir,
		binary:   binary,
		planFile: planFile,
		timeouts: opts.Timeouts.withDefaults(),
		extraEnv: extraEnv,
		logger:   logger,
	}, nil
}

// WorkDir returns the resolved absolute working directory.
func (o *Orchestrator) WorkDir() string { return o.workDir }

// Plan runs the plan subcommand, persisting the plan artifact on disk for a
// later Apply. A nonzero tool exit is reported through the result, not as an
// error.
func (o *Orchestrator) Plan(ctx context.Context) (ExecutionResult, error) {
	return o.runExclusive(ctx, OpPlan, o.timeouts.Plan, "plan", "-input=false", "-out="+o.planFile)
}

// Apply runs the apply subcommand against the plan artifact produced by the
// most recent Plan. When no artifact exists the tool itself errors and the
// result carries its message; Apply never re-plans.
func (o *Orchestrator) Apply(ctx context.Context) (ExecutionResult, error) {
	return o.runExclusive(ctx, OpApply, o.timeouts.Apply, "apply", "-input=false", o.planFile)
}

// Destroy runs the destroy subcommand unconditionally against current state.
// Confirmation UX is the caller's responsibility.
func (o *Orchestrator) Destroy(ctx context.Context) (ExecutionResult, error) {
	return o.runExclusive(ctx, OpDestroy, o.timeouts.Destroy, "destroy", "-input=false", "-auto-approve")
}

// Dispatch routes a symbolic operation name to Plan, Apply or Destroy. An
// unknown name yields an *InvalidOperationError without starting a
// subprocess.
func (o *Orchestrator) Dispatch(ctx context.Context, name string) (ExecutionResult, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(name))) {
	case OpPlan:
		return o.Plan(ctx)
	case OpApply:
		return o.Apply(ctx)
	case OpDestroy:
		return o.Destroy(ctx)
	default:
		err := &InvalidOperationError{Name: name}
		return ExecutionResult{ExitCode: -1, Error: err.Error()}, err
	}
}

// CheckAvailability probes the tool with its version subcommand. It never
// returns an error; any failure lands in the Error field with
// Available=false. Initialized is checked on the filesystem independently of
// the subprocess outcome.
func (o *Orchestrator) CheckAvailability(ctx context.Context) AvailabilityInfo {
	info := AvailabilityInfo{Initialized: o.initialized()}

	res, err := o.run(ctx, OpVersion, o.timeouts.Version, "version")
	if err != nil {
		info.Error = err.Error()
		return info
	}
	if !res.Success {
		info.Error = res.Error
		return info
	}

	info.Available = true
	info.Version = firstLine(res.Stdout)
	return info
}

// initialized reports whether the init marker directory exists in the
// working directory.
func (o *Orchestrator) initialized() bool {
	fi, err := os.Stat(filepath.Join(o.workDir, initMarkerDir))
	return err == nil && fi.IsDir()
}

// runExclusive claims the working directory before running, failing fast
// with *InProgressError if another operation holds it.
func (o *Orchestrator) runExclusive(ctx context.Context, op Operation, timeout time.Duration, args ...string) (ExecutionResult, error) {
	release, err := lockWorkDir(o.workDir)
	if err != nil {
		return ExecutionResult{ExitCode: -1, Error: err.Error()}, err
	}
	defer release()
	return o.run(ctx, op, timeout, args...)
}

// run executes one tool invocation and normalizes its outcome. Timeout,
// binary-not-found and nonzero-exit are distinct conditions: the first two
// come back as typed errors, a nonzero exit is a tool-reported failure
// encoded in the result with a nil error.
func (o *Orchestrator) run(ctx context.Context, op Operation, timeout time.Duration, args ...string) (ExecutionResult, error) {
	res := ExecutionResult{ExitCode: -1}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, o.binary, args...)
	cmd.Dir = o.workDir
	cmd.Env = append(os.Environ(), o.extraEnv...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, logging.NewWriter(o.logger, slog.LevelDebug, string(op)))
	cmd.Stderr = io.MultiWriter(&stderr, logging.NewWriter(o.logger, slog.LevelDebug, string(op)))

	o.logger.Info("running tool", "op", op, "binary", o.binary, "args", args, "workdir", o.workDir)

	start := time.Now()
	runErr := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = Strip(stdout.String())
	res.Stderr = Strip(stderr.String())

	if runErr == nil {
		res.Success = true
		res.ExitCode = 0
		o.logger.Info("tool finished", "op", op, "duration", res.Duration)
		return res, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		terr := &TimeoutError{Op: op, Limit: timeout}
		res.Error = terr.Error()
		o.logger.Error("tool timed out", "op", op, "limit", timeout)
		return res, terr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Error = res.Stderr
		if res.Error == "" {
			res.Error = Strip(runErr.Error())
		}
		o.logger.Error("tool failed", "op", op, "exit_code", res.ExitCode, "duration", res.Duration)
		return res, nil
	}

	uerr := &ToolUnavailableError{Binary: o.binary, Err: runErr}
	res.Error = uerr.Error()
	o.logger.Error("tool could not be executed", "op", op, "binary", o.binary, "error", runErr)
	return res, uerr
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
