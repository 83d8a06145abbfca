package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/cue"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrSchema is returned when a calibration file does not match the thresholds schema.
var ErrSchema = errors.New("calibration file does not match schema")

// LoadThresholds reads a YAML or JSON calibration file and returns the default
// thresholds with every family in the file replaced. An empty path returns the
// defaults unchanged.
func LoadThresholds(path string) (cogniscore.Thresholds, error) {
	if path == "" {
		return cogniscore.DefaultThresholds(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading calibration file: %w", err)
	}
	return ParseThresholds(path, content)
}

// ParseThresholds validates content against the thresholds schema, decodes it
// and merges it over the defaults. path is used in error messages only.
func ParseThresholds(path string, content []byte) (cogniscore.Thresholds, error) {
	validator := cue.NewValidator()
	if err := validator.LoadSchemas(); err != nil {
		return nil, err
	}
	verrs, err := validator.ValidateFile(path, content, cue.SchemaThresholds)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			msgs = append(msgs, ve.String())
		}
		return nil, fmt.Errorf("%w:\n  %s", ErrSchema, strings.Join(msgs, "\n  "))
	}

	var override cogniscore.Thresholds
	if err := yamlv3.Unmarshal(content, &override); err != nil {
		return nil, fmt.Errorf("error decoding calibration file %s: %w", path, err)
	}

	merged := cogniscore.DefaultThresholds().Merge(override)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration in %s: %w", path, err)
	}
	return merged, nil
}
