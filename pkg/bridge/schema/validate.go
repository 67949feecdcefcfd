// Package schema validates raw state payloads against JSON Schema
// documents generated from a light's capabilities.
package schema

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tlind/huemcp/pkg/bridge"
)

// capabilities identifies which optional state channels a light reports.
// Only eight combinations exist, so compiled schemas are cached per
// combination rather than per document.
type capabilities struct {
	dimmable  bool
	color     bool
	colorTemp bool
}

func capabilitiesOf(l bridge.Light) capabilities {
	return capabilities{
		dimmable:  l.State.Bri != nil,
		color:     l.SupportsColor(),
		colorTemp: l.SupportsColorTemp(),
	}
}

// Validator checks raw state payloads against the schema for a light's
// capability set.
type Validator struct {
	mu    sync.Mutex
	cache map[capabilities]*jsonschema.Schema
}

// NewValidator creates a Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[capabilities]*jsonschema.Schema),
	}
}

// ValidateState validates payload against the state schema for l. A write
// targeting a channel the light does not report fails here, before any
// request is made.
func (v *Validator) ValidateState(l bridge.Light, payload map[string]any) error {
	compiled, err := v.schemaFor(capabilitiesOf(l))
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	return compiled.Validate(payload)
}

func (v *Validator) schemaFor(caps capabilities) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.cache[caps]; ok {
		return s, nil
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("state.json", stateDocument(caps)); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("state.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[caps] = compiled
	return compiled, nil
}
