package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kahvecikaan/signals/internal/domain"
	"gopkg.in/yaml.v3"
)

// Scenario sets the rules of the arena and the units present at start up
type Scenario struct {
	Rules domain.Rules          `yaml:"rules"`
	Units []domain.SpawnRequest `yaml:"units" validate:"dive"`
}

// DefaultScenario scores at steps 2 and 3, ends the game at step 5 and
// starts with an empty arena.
func DefaultScenario() Scenario {
	return Scenario{Rules: domain.DefaultRules()}
}

// LoadScenario reads a scenario from a YAML file. An empty path returns
// DefaultScenario.
func LoadScenario(path string, v *domain.Validation) (Scenario, error) {
	if path == "" {
		return DefaultScenario(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("unable to open scenario: %w", err)
	}
	defer f.Close()

	return ParseScenario(f, v)
}

// ParseScenario decodes and validates a YAML scenario. Fields missing from
// the document keep their default values; unknown fields are rejected.
func ParseScenario(r io.Reader, v *domain.Validation) (Scenario, error) {
	sc := DefaultScenario()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("unable to decode scenario: %w", err)
	}

	if errs := v.Validate(sc); len(errs) > 0 {
		return Scenario{}, fmt.Errorf("invalid scenario: %w", errs)
	}

	return sc, nil
}

// String renders the scenario back to YAML
func (s Scenario) String() string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err.Error()
	}
	enc.Close()
	return buf.String()
}
