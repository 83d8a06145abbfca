package cue

import (
	"strings"
	"testing"
)

func loadedValidator(t *testing.T) *Validator {
	t.Helper()
	v := NewValidator()
	if err := v.LoadSchemas(); err != nil {
		t.Fatalf("LoadSchemas failed: %v", err)
	}
	return v
}

// TestNewValidator tests the Validator constructor
func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
	if v.ctx == nil {
		t.Error("Validator.ctx is nil")
	}
	if len(v.schemas) != 0 {
		t.Errorf("Expected empty schemas map, got %d entries", len(v.schemas))
	}
}

// TestLoadSchemas tests loading embedded CUE schemas
func TestLoadSchemas(t *testing.T) {
	v := loadedValidator(t)
	for _, name := range []string{SchemaThresholds, SchemaScenario} {
		if _, ok := v.schemas[name]; !ok {
			t.Errorf("Expected schema %q to be loaded", name)
		}
	}
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name: "single family override",
			content: `
perclos:
  - {name: normal, value: 15}
  - {name: mild, value: 25}
  - {name: moderate, value: 45}
  - {name: severe, value: 65}
  - {name: critical, value: 75}
`,
		},
		{
			name:    "empty document",
			content: ``,
		},
		{
			name:    "json document",
			content: `{"hrv": [{"name": "normal", "value": 10}, {"name": "critical", "value": 2.5}]}`,
		},
		{
			name:      "unknown family",
			content:   "blinkRate:\n  - {name: normal, value: 1}\n",
			wantError: true,
		},
		{
			name:      "negative breakpoint",
			content:   "hrv:\n  - {name: critical, value: -2}\n",
			wantError: true,
		},
		{
			name:      "missing value",
			content:   "hrv:\n  - {name: critical}\n",
			wantError: true,
		},
		{
			name:      "empty table",
			content:   "hrv: []\n",
			wantError: true,
		},
		{
			name:      "string value",
			content:   "heartRate:\n  - {name: normal, value: fast}\n",
			wantError: true,
		},
	}

	v := loadedValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateFile("calibration.yaml", []byte(tt.content), SchemaThresholds)
			if err != nil {
				t.Fatalf("ValidateFile returned error: %v", err)
			}
			if tt.wantError && len(errs) == 0 {
				t.Error("Expected validation errors, got none")
			}
			if !tt.wantError && len(errs) > 0 {
				t.Errorf("Expected no validation errors, got %v", errs)
			}
			for _, e := range errs {
				if e.File != "calibration.yaml" {
					t.Errorf("File = %q, want calibration.yaml", e.File)
				}
			}
		})
	}
}

func TestValidateScenario(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name: "full case",
			content: `
scenarios:
  - name: emergency
    description: every family in its worst band
    expectTier: 3
    metrics:
      perclos: 85
      yawnRate: 4.5
      heartRate: 45
      pedalPressure: 15
      hrv: 1.5
      previousHeartRate: 70
      inactivityTime: 12
`,
		},
		{
			name: "level name and defaults",
			content: `
scenarios:
  - name: baseline
    expectTier: normal
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72, pedalPressure: 85}
`,
		},
		{
			name:      "no scenarios",
			content:   "scenarios: []\n",
			wantError: true,
		},
		{
			name: "missing required metric",
			content: `
scenarios:
  - name: partial
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72}
`,
			wantError: true,
		},
		{
			name: "tier out of range",
			content: `
scenarios:
  - name: bad tier
    expectTier: 4
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72, pedalPressure: 85}
`,
			wantError: true,
		},
		{
			name: "unknown level",
			content: `
scenarios:
  - name: bad level
    expectTier: panic
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72, pedalPressure: 85}
`,
			wantError: true,
		},
		{
			name: "unknown metric",
			content: `
scenarios:
  - name: extra
    metrics: {perclos: 15, yawnRate: 0.3, heartRate: 72, pedalPressure: 85, blinkRate: 3}
`,
			wantError: true,
		},
		{
			name:      "malformed yaml",
			content:   "scenarios: [\n",
			wantError: true,
		},
	}

	v := loadedValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateFile("drive.scenario.yaml", []byte(tt.content), SchemaScenario)
			if err != nil {
				t.Fatalf("ValidateFile returned error: %v", err)
			}
			if tt.wantError && len(errs) == 0 {
				t.Error("Expected validation errors, got none")
			}
			if !tt.wantError && len(errs) > 0 {
				t.Errorf("Expected no validation errors, got %v", errs)
			}
		})
	}
}

func TestValidateFileUnknownSchema(t *testing.T) {
	v := loadedValidator(t)
	if _, err := v.ValidateFile("x.yaml", []byte("a: 1"), "agent"); err == nil {
		t.Error("Expected error for unknown schema type")
	}
}

func TestValidateBeforeLoad(t *testing.T) {
	v := NewValidator()
	if _, err := v.ValidateScenario(map[string]any{}); err == nil {
		t.Error("Expected error when schemas are not loaded")
	}
}

func TestValidationErrorString(t *testing.T) {
	tests := []struct {
		err  ValidationError
		want string
	}{
		{ValidationError{Message: "boom"}, "boom"},
		{ValidationError{File: "a.yaml", Message: "boom"}, "a.yaml: boom"},
		{ValidationError{File: "a.yaml", Path: "hrv.0.value", Message: "boom"}, "a.yaml: hrv.0.value: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	data, err := Decode([]byte(`{"perclos": [{"name": "normal", "value": 20}]}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := data["perclos"]; !ok {
		t.Error("Expected perclos key")
	}

	empty, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) failed: %v", err)
	}
	if empty == nil {
		t.Error("Decode(nil) should return an empty map")
	}

	if _, err := Decode([]byte("- a\n- b\n")); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("Expected parse error for a list document, got %v", err)
	}
}
