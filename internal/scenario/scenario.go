// Package scenario loads named metric vectors from YAML or JSON files and
// evaluates them against a scoring engine.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/cue"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrInvalid wraps schema failures for a scenario file.
var ErrInvalid = errors.New("invalid scenario file")

// Scenario is one named metric vector.
type Scenario struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string             `json:"source" yaml:"-"`
	Expect      *cogniscore.Tier   `json:"expectTier,omitempty" yaml:"-"`
	Metrics     cogniscore.Metrics `json:"metrics" yaml:"metrics"`
}

type document struct {
	Scenarios []struct {
		Name        string             `yaml:"name"`
		Description string             `yaml:"description"`
		ExpectTier  any                `yaml:"expectTier"`
		Metrics     cogniscore.Metrics `yaml:"metrics"`
	} `yaml:"scenarios"`
}

// Loader reads scenario files, validating each against the scenario schema.
type Loader struct {
	validator *cue.Validator
}

// NewLoader compiles the embedded schemas.
func NewLoader() (*Loader, error) {
	v := cue.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return nil, err
	}
	return &Loader{validator: v}, nil
}

// LoadFile reads and parses one scenario file.
func (l *Loader) LoadFile(path string) ([]Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario file: %w", err)
	}
	return l.Parse(path, content)
}

// Parse validates and decodes scenario content. Every returned scenario has
// Source set to path.
func (l *Loader) Parse(path string, content []byte) ([]Scenario, error) {
	verrs, err := l.validator.ValidateFile(path, content, cue.SchemaScenario)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			msgs = append(msgs, ve.String())
		}
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(msgs, "\n  "))
	}

	var doc document
	if err := yamlv3.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("error decoding scenario file %s: %w", path, err)
	}

	out := make([]Scenario, 0, len(doc.Scenarios))
	for _, c := range doc.Scenarios {
		s := Scenario{
			Name:        c.Name,
			Description: c.Description,
			Source:      path,
			Metrics:     c.Metrics,
		}
		if c.ExpectTier != nil {
			tier, err := parseExpect(c.ExpectTier)
			if err != nil {
				return nil, fmt.Errorf("%s: scenario %q: %w", path, c.Name, err)
			}
			s.Expect = &tier
		}
		out = append(out, s)
	}
	return out, nil
}

func parseExpect(v any) (cogniscore.Tier, error) {
	switch t := v.(type) {
	case int:
		return cogniscore.ParseTier(fmt.Sprint(t))
	case float64:
		return cogniscore.ParseTier(fmt.Sprint(int(t)))
	case string:
		return cogniscore.ParseTier(t)
	default:
		return 0, fmt.Errorf("unsupported expectTier %v", v)
	}
}
