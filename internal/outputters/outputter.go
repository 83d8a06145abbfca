package outputters

import (
	"fmt"
	"io"
	"os"

	"github.com/dotcommander/cognishield/internal/config"
	"github.com/dotcommander/cognishield/internal/output"
	"github.com/dotcommander/cognishield/internal/scenario"
)

// Formatter is the rendering surface the outputter dispatches to.
type Formatter = output.Formatter

// FormatterFactory builds the formatter for a format name.
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the console, JSON and Markdown formatters
// from the configuration.
type DefaultFormatterFactory struct {
	config *config.Config
	out    io.Writer
}

// CreateFormatter returns the formatter for format
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return output.NewConsoleFormatter(f.out, f.config.Quiet, f.config.Verbose), nil
	case "json":
		return output.NewJSONFormatter(f.out, true, f.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.out, f.config.Verbose, f.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates an Outputter writing to stdout
func NewOutputter(cfg *config.Config) *Outputter {
	return NewOutputterWithWriter(cfg, os.Stdout)
}

// NewOutputterWithWriter creates an Outputter writing to out
func NewOutputterWithWriter(cfg *config.Config, out io.Writer) *Outputter {
	return NewOutputterWithFactory(cfg, &DefaultFormatterFactory{config: cfg, out: out})
}

// NewOutputterWithFactory creates an Outputter with a custom factory
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{
		config:  cfg,
		factory: factory,
	}
}

// Report renders a scenario run in the configured format
func (o *Outputter) Report(report *scenario.Report) error {
	formatter, err := o.factory.CreateFormatter(o.config.Format)
	if err != nil {
		return err
	}
	if err := formatter.FormatReport(report); err != nil {
		return fmt.Errorf("error formatting report: %w", err)
	}
	return nil
}

// Evaluation renders a single scored sample in the configured format
func (o *Outputter) Evaluation(result scenario.Result) error {
	formatter, err := o.factory.CreateFormatter(o.config.Format)
	if err != nil {
		return err
	}
	if err := formatter.FormatEvaluation(result); err != nil {
		return fmt.Errorf("error formatting evaluation: %w", err)
	}
	return nil
}
