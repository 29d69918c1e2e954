package terraform

import (
	"context"
	"encoding/json"
)

// stateDocument mirrors the fields of the machine-readable state dump this
// component consumes. Everything else in the document is opaque.
type stateDocument struct {
	Values struct {
		RootModule struct {
			Resources []struct {
				Address string `json:"address"`
			} `json:"resources"`
		} `json:"root_module"`
	} `json:"values"`
}

// ShowState fetches and parses the machine-readable state dump. A nonzero
// tool exit yields a *ProcessError ("tool produced no state"); an
// undecodable document yields a *ParseError. The two are deliberately
// distinct.
func (o *Orchestrator) ShowState(ctx context.Context) (*StateSnapshot, error) {
	res, err := o.run(ctx, OpShowState, o.timeouts.Show, "show", "-json")
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &ProcessError{Op: OpShowState, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return parseStateDocument([]byte(res.Stdout))
}

// parseStateDocument extracts the root module resource list from a state
// dump.
func parseStateDocument(raw []byte) (*StateSnapshot, error) {
	var doc stateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Op: OpShowState, Err: err}
	}

	resources := doc.Values.RootModule.Resources
	snap := &StateSnapshot{
		ResourceCount:     len(resources),
		ResourceAddresses: make([]string, 0, len(resources)),
		Raw:               json.RawMessage(append([]byte(nil), raw...)),
	}
	for _, r := range resources {
		addr := r.Address
		if addr == "" {
			addr = "unknown"
		}
		snap.ResourceAddresses = append(snap.ResourceAddresses, addr)
	}
	return snap, nil
}

// ShowOutputs fetches and parses the machine-readable outputs dump. Each
// value carries the sensitivity flag declared by the tool. Failure semantics
// match ShowState.
func (o *Orchestrator) ShowOutputs(ctx context.Context) (OutputSet, error) {
	res, err := o.run(ctx, OpShowOutputs, o.timeouts.Show, "output", "-json")
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &ProcessError{Op: OpShowOutputs, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	var outputs OutputSet
	if err := json.Unmarshal([]byte(res.Stdout), &outputs); err != nil {
		return nil, &ParseError{Op: OpShowOutputs, Err: err}
	}
	if outputs == nil {
		outputs = OutputSet{}
	}
	return outputs, nil
}
