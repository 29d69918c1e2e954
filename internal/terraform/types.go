// Package terraform drives a declarative infrastructure-as-code binary as a
// subprocess: plan/apply/destroy lifecycle, state and output inspection, and
// availability checks, all with per-operation timeouts and sanitized output.
package terraform

import (
	"encoding/json"
	"time"
)

// Operation identifies one of the supported orchestrator operations.
type Operation string

const (
	// OpPlan produces a plan artifact on disk for a later apply.
	OpPlan Operation = "plan"
	// OpApply applies the plan artifact produced by the most recent plan.
	OpApply Operation = "apply"
	// OpDestroy tears down all managed resources without a plan step.
	OpDestroy Operation = "destroy"
	// OpShowState dumps the current state in machine-readable form.
	OpShowState Operation = "state"
	// OpShowOutputs dumps declared outputs in machine-readable form.
	OpShowOutputs Operation = "outputs"
	// OpVersion runs the tool's version subcommand.
	OpVersion Operation = "version"
)

// ExecutionResult is the uniform outcome of a plan/apply/destroy invocation.
// Stdout, Stderr and Error are sanitized of terminal escape sequences and are
// safe to display directly. A result is produced fresh per invocation and is
// owned by the caller.
type ExecutionResult struct {
	// Success is true iff the subprocess exited with code zero.
	Success bool
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
	// ExitCode is the subprocess exit code; -1 when no process ran to completion.
	ExitCode int
	// Duration is the wall-clock time the invocation took.
	Duration time.Duration
	// Error is a human-readable failure message, empty on success.
	Error string
}

// StateSnapshot describes the resources currently tracked in the tool's
// state, valid only for the instant it was fetched.
type StateSnapshot struct {
	// ResourceCount is the number of resources in the root module.
	ResourceCount int
	// ResourceAddresses lists resource addresses in state order.
	ResourceAddresses []string
	// Raw is the full state document as returned by the tool.
	Raw json.RawMessage
}

// OutputValue is a single declared output with its sensitivity flag.
type OutputValue struct {
	Value     json.RawMessage `json:"value"`
	Type      json.RawMessage `json:"type,omitempty"`
	Sensitive bool            `json:"sensitive,omitempty"`
}

// OutputSet maps output names to their values.
type OutputSet map[string]OutputValue

// AvailabilityInfo reports whether the tool binary can be executed and
// whether the working directory has been initialized. The two booleans are
// independent: Initialized comes from a filesystem marker, not from the
// version subprocess, and callers decide how to combine them.
type AvailabilityInfo struct {
	Available   bool
	Version     string
	Initialized bool
	Error       string
}

// Timeouts bounds each operation class. Zero values fall back to defaults.
type Timeouts struct {
	Version time.Duration
	Plan    time.Duration
	Apply   time.Duration
	Destroy time.Duration
	Show    time.Duration
}

// DefaultTimeouts returns the built-in per-operation bounds, sized for a
// small demo stack.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Version: 10 * time.Second,
		Plan:    2 * time.Minute,
		Apply:   10 * time.Minute,
		Destroy: 10 * time.Minute,
		Show:    30 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTimeouts.
func (t Timeouts) withDefaults() Timeouts {
	def := DefaultTimeouts()
	if t.Version <= 0 {
		t.Version = def.Version
	}
	if t.Plan <= 0 {
		t.Plan = def.Plan
	}
	if t.Apply <= 0 {
		t.Apply = def.Apply
	}
	if t.Destroy <= 0 {
		t.Destroy = def.Destroy
	}
	if t.Show <= 0 {
		t.Show = def.Show
	}
	return t
}
