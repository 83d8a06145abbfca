package cue

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Schema names, one per embedded file.
const (
	SchemaThresholds = "thresholds"
	SchemaScenario   = "scenario"
)

// ValidationError represents a validation error
type ValidationError struct {
	File    string
	Path    string // dotted path of the offending field, empty for document-level errors
	Message string
}

func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every CUE schema in the embedded filesystem
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// thresholds.cue -> thresholds
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}
	return nil
}

// ValidateThresholds validates decoded calibration data against #Thresholds
func (v *Validator) ValidateThresholds(data map[string]any) ([]ValidationError, error) {
	return v.validate(SchemaThresholds, data)
}

// ValidateScenario validates decoded scenario data against #Scenario
func (v *Validator) ValidateScenario(data map[string]any) ([]ValidationError, error) {
	return v.validate(SchemaScenario, data)
}

// ValidateFile decodes YAML or JSON content and validates it against the
// named schema. Decode failures are reported as validation errors.
func (v *Validator) ValidateFile(path string, content []byte, schemaType string) ([]ValidationError, error) {
	data, err := Decode(content)
	if err != nil {
		return []ValidationError{{File: path, Message: err.Error()}}, nil
	}

	var errs []ValidationError
	switch schemaType {
	case SchemaThresholds:
		errs, err = v.ValidateThresholds(data)
	case SchemaScenario:
		errs, err = v.ValidateScenario(data)
	default:
		return nil, fmt.Errorf("unknown schema type: %s", schemaType)
	}
	if err != nil {
		return nil, err
	}
	for i := range errs {
		errs[i].File = path
	}
	return errs, nil
}

// Decode parses YAML (and therefore JSON) into a generic map.
func Decode(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := yamlv3.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

func (v *Validator) validate(schemaType string, data map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas[schemaType]
	if !ok {
		return nil, fmt.Errorf("schema %q not loaded", schemaType)
	}

	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	// thresholds -> #Thresholds
	defPath := cue.ParsePath("#" + strings.ToUpper(schemaType[:1]) + schemaType[1:])
	def := schema.LookupPath(defPath)
	if !def.Exists() {
		return nil, fmt.Errorf("schema %q has no %s definition", schemaType, defPath)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return extractErrors(err), nil
	}

	// Concreteness catches missing required fields
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrors(err), nil
	}

	return nil, nil
}

// extractErrors flattens a CUE error list into one ValidationError per entry
func extractErrors(err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Message: fmt.Sprintf("schema validation failed: %v", err)})
	}
	return out
}
