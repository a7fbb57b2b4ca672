package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"launchdash/internal/figure"
)

var (
	ErrUnknownOutput = errors.New("unknown callback output")
	ErrBadInput      = errors.New("bad callback input")
)

// Prop addresses one property of one component, written "id.property".
type Prop struct {
	ID       string
	Property string
}

func (p Prop) String() string { return p.ID + "." + p.Property }

// ParseProp splits "id.property" at the last dot.
func ParseProp(s string) (Prop, error) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return Prop{}, fmt.Errorf("%q: want <id>.<property>", s)
	}
	return Prop{ID: s[:i], Property: s[i+1:]}, nil
}

// Inputs carries the raw JSON values of a callback's inputs.
type Inputs map[string]json.RawMessage

// Decode unmarshals the value of p into dst. It reports false when the input
// was not sent or is null, leaving dst untouched.
func (in Inputs) Decode(p Prop, dst any) (bool, error) {
	raw, ok := in[p.String()]
	if !ok || len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%s: %w: %v", p, ErrBadInput, err)
	}
	return true, nil
}

// Callback recomputes one output property from its inputs.
type Callback struct {
	Output Prop
	Inputs []Prop
	Fn     func(Inputs) (figure.Figure, error)
}

// UpdateRequest is the body of a callback invocation.
type UpdateRequest struct {
	Output string `json:"output"`
	Inputs Inputs `json:"inputs"`
}

// UpdateResponse is the recomputed output.
type UpdateResponse struct {
	Output string        `json:"output"`
	Figure figure.Figure `json:"figure"`
}

// Dependency lists the inputs that trigger an output.
type Dependency struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

// Registry maps outputs to callbacks. It is filled at startup and read-only
// afterwards.
type Registry struct {
	callbacks map[string]Callback
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]Callback)}
}

// Register adds cb. Each output may have only one callback.
func (r *Registry) Register(cb Callback) error {
	key := cb.Output.String()
	if _, dup := r.callbacks[key]; dup {
		return fmt.Errorf("output %s already has a callback", key)
	}
	if cb.Fn == nil {
		return fmt.Errorf("output %s: nil callback", key)
	}
	r.callbacks[key] = cb
	return nil
}

// Dispatch runs the callback for req.Output in full. An output that is not of
// the form "id.property" is ErrBadInput; a well-formed one with no callback is
// ErrUnknownOutput.
func (r *Registry) Dispatch(req UpdateRequest) (UpdateResponse, error) {
	out, err := ParseProp(req.Output)
	if err != nil {
		return UpdateResponse{}, fmt.Errorf("output %w: %v", ErrBadInput, err)
	}
	cb, ok := r.callbacks[out.String()]
	if !ok {
		return UpdateResponse{}, fmt.Errorf("%q: %w", req.Output, ErrUnknownOutput)
	}
	in := req.Inputs
	if in == nil {
		in = Inputs{}
	}
	fig, err := cb.Fn(in)
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Output: req.Output, Figure: fig}, nil
}

// Dependencies returns the callback graph sorted by output.
func (r *Registry) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(r.callbacks))
	for out, cb := range r.callbacks {
		d := Dependency{Output: out}
		for _, in := range cb.Inputs {
			d.Inputs = append(d.Inputs, in.String())
		}
		deps = append(deps, d)
	}
	slices.SortFunc(deps, func(a, b Dependency) int { return strings.Compare(a.Output, b.Output) })
	return deps
}
