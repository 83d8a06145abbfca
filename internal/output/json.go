package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/scenario"
)

// Tool identifies the producer in machine-readable reports.
const Tool = "cognishield"

// Version is stamped into reports. Overridden at link time.
var Version = "dev"

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	out        io.Writer
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. Output goes to outputFile
// when set, otherwise to out.
func NewJSONFormatter(out io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		out:        out,
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONHeader identifies the report
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONSummary totals a scenario run
type JSONSummary struct {
	Total       int            `json:"total"`
	Passed      int            `json:"passed"`
	Failed      int            `json:"failed"`
	Drifted     int            `json:"drifted"`
	Tiers       map[string]int `json:"tiers"`
	Calibration string         `json:"calibration"`
	Baseline    string         `json:"baseline,omitempty"`
	Duration    string         `json:"duration"`
}

// JSONResult is one evaluated scenario
type JSONResult struct {
	Name          string                    `json:"name"`
	Source        string                    `json:"source,omitempty"`
	Expected      *int                      `json:"expectedTier,omitempty"`
	Passed        bool                      `json:"passed"`
	Drifted       bool                      `json:"drifted,omitempty"`
	Metrics       cogniscore.Metrics        `json:"metrics"`
	Alert         cogniscore.AlertTier      `json:"alert"`
	Contributions []cogniscore.Contribution `json:"contributions"`
}

// JSONReport is the document written for a scenario run
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	Summary JSONSummary  `json:"summary"`
	Results []JSONResult `json:"results"`
}

// JSONEvaluation is the document written for a single sample
type JSONEvaluation struct {
	Header JSONHeader `json:"header"`
	JSONResult
}

func newHeader() JSONHeader {
	return JSONHeader{
		Tool:      Tool,
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func toJSONResult(r scenario.Result) JSONResult {
	res := JSONResult{
		Name:          r.Scenario.Name,
		Source:        r.Scenario.Source,
		Passed:        r.Passed(),
		Drifted:       r.Drifted,
		Metrics:       r.Scenario.Metrics,
		Alert:         r.Alert,
		Contributions: r.Contributions,
	}
	if r.Scenario.Expect != nil {
		tier := int(*r.Scenario.Expect)
		res.Expected = &tier
	}
	if res.Contributions == nil {
		res.Contributions = []cogniscore.Contribution{}
	}
	return res
}

// FormatReport writes the scenario run as JSON
func (f *JSONFormatter) FormatReport(report *scenario.Report) error {
	tiers := make(map[string]int)
	for tier, n := range report.TierCounts() {
		tiers[tier.String()] = n
	}

	doc := JSONReport{
		Header: newHeader(),
		Summary: JSONSummary{
			Total:       len(report.Results),
			Passed:      len(report.Results) - len(report.Failed()),
			Failed:      len(report.Failed()),
			Drifted:     len(report.Drifted()),
			Tiers:       tiers,
			Calibration: report.Calibration,
			Baseline:    report.Baseline,
			Duration:    report.Duration.Round(time.Millisecond).String(),
		},
		Results: make([]JSONResult, len(report.Results)),
	}
	for i, r := range report.Results {
		doc.Results[i] = toJSONResult(r)
	}
	return f.write(doc)
}

// FormatEvaluation writes a single sample as JSON
func (f *JSONFormatter) FormatEvaluation(r scenario.Result) error {
	return f.write(JSONEvaluation{Header: newHeader(), JSONResult: toJSONResult(r)})
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}

	_, err = fmt.Fprintln(f.out, string(jsonBytes))
	return err
}
