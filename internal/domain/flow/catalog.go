// Package flow holds the static conversation flow definitions: named states,
// their candidate responses, and the transitions allowed out of each state.
package flow

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Well-known state names. Every flow must define a greeting and a terminal
// farewell; transfer and information participate in the transition rules.
const (
	StateGreeting    = "greeting"
	StateFarewell    = "farewell"
	StateTransfer    = "transfer"
	StateInformation = "information"
)

// DefaultFlowID is the flow used when an unknown flow is requested.
const DefaultFlowID = "default"

// StateDefinition describes one state in a flow.
type StateDefinition struct {
	Responses  []string `yaml:"responses"`
	NextStates []string `yaml:"next_states"`
}

// Flow is a named set of states. Flows are immutable after load.
type Flow struct {
	ID     string
	States map[string]StateDefinition
}

// Catalog is the immutable table of flows. It is loaded once at startup and
// never mutated afterwards, so reads need no locking.
type Catalog struct {
	flows map[string]Flow
	log   zerolog.Logger
}

// NewCatalog builds a catalog from the built-in flows, optionally merged with
// flows loaded from a YAML file. File flows override built-ins with the same
// ID.
func NewCatalog(configPath string, log zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		flows: builtinFlows(),
		log:   log.With().Str("component", "flow-catalog").Logger(),
	}

	if configPath != "" {
		loaded, err := loadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load flow config %s: %w", configPath, err)
		}
		for id, f := range loaded {
			c.flows[id] = f
		}
		c.log.Info().Str("path", configPath).Int("flows", len(loaded)).Msg("loaded flow definitions from file")
	}

	for id, f := range c.flows {
		if err := validateFlow(f); err != nil {
			return nil, fmt.Errorf("flow %q: %w", id, err)
		}
		c.warnUnknownNextStates(f)
	}

	return c, nil
}

// Get returns the flow with the given ID, falling back to the default flow
// when the ID is unknown. The fallback is logged, not an error.
func (c *Catalog) Get(flowID string) Flow {
	if f, ok := c.flows[flowID]; ok {
		return f
	}
	c.log.Warn().Str("flow_id", flowID).Msg("flow not found, using default")
	return c.flows[DefaultFlowID]
}

// Has reports whether the catalog defines the given flow.
func (c *Catalog) Has(flowID string) bool {
	_, ok := c.flows[flowID]
	return ok
}

// StateOf returns the definition of the named state within the flow, falling
// back to the flow's greeting state when the name is absent. The fallback is
// a documented part of the transition rules, not an error.
func (c *Catalog) StateOf(f Flow, stateName string) StateDefinition {
	if def, ok := f.States[stateName]; ok {
		return def
	}
	return f.States[StateGreeting]
}

type flowFile struct {
	Flows map[string]struct {
		States map[string]StateDefinition `yaml:"states"`
	} `yaml:"flows"`
}

func loadFile(path string) (map[string]Flow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed flowFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	flows := make(map[string]Flow, len(parsed.Flows))
	for id, def := range parsed.Flows {
		flows[id] = Flow{ID: id, States: def.States}
	}
	return flows, nil
}

func validateFlow(f Flow) error {
	greeting, ok := f.States[StateGreeting]
	if !ok {
		return fmt.Errorf("missing required state %q", StateGreeting)
	}
	if len(greeting.Responses) == 0 {
		return fmt.Errorf("state %q has no responses", StateGreeting)
	}

	farewell, ok := f.States[StateFarewell]
	if !ok {
		return fmt.Errorf("missing required state %q", StateFarewell)
	}
	if len(farewell.NextStates) != 0 {
		return fmt.Errorf("state %q must be terminal", StateFarewell)
	}

	for name, def := range f.States {
		if len(def.Responses) == 0 {
			return fmt.Errorf("state %q has no responses", name)
		}
	}
	return nil
}

// warnUnknownNextStates flags transitions pointing at states the flow does not
// define. These are legal (lookup falls back to greeting) but usually indicate
// an incomplete flow definition.
func (c *Catalog) warnUnknownNextStates(f Flow) {
	for name, def := range f.States {
		for _, next := range def.NextStates {
			if _, ok := f.States[next]; !ok && next != StateTransfer && next != StateFarewell {
				c.log.Warn().
					Str("flow_id", f.ID).
					Str("state", name).
					Str("next_state", next).
					Msg("transition targets undefined state")
			}
		}
	}
}
