package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/cognishield/internal/cogniscore"
	"github.com/dotcommander/cognishield/internal/config"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"
)

var (
	thresholdsCheck string
	thresholdsWrite string
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show, check or write calibration thresholds",
	Long: `Prints the thresholds in force (the defaults merged with --thresholds), as
YAML or, with --format json, as JSON.

--check validates a calibration file against the schema and the ordering
rules without using it. --write saves the defaults as a starting point for a
new calibration.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runThresholds(cmd.OutOrStdout()); err != nil {
			fail(err)
		}
	},
}

func init() {
	thresholdsCmd.Flags().StringVar(&thresholdsCheck, "check", "", "Validate a calibration file")
	thresholdsCmd.Flags().StringVar(&thresholdsWrite, "write", "", "Write the default thresholds to a YAML file")
	rootCmd.AddCommand(thresholdsCmd)
}

func runThresholds(w io.Writer) error {
	switch {
	case thresholdsCheck != "":
		if _, err := config.LoadThresholds(thresholdsCheck); err != nil {
			return err
		}
		ok := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		fmt.Fprintf(w, "%s %s\n", ok.Render("✓"), thresholdsCheck)
		return nil

	case thresholdsWrite != "":
		data, err := yamlv3.Marshal(orderedThresholds(cogniscore.DefaultThresholds()))
		if err != nil {
			return fmt.Errorf("error encoding thresholds: %w", err)
		}
		if err := os.WriteFile(thresholdsWrite, data, 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", thresholdsWrite, err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(w, "Default thresholds written to %s\n", thresholdsWrite)
		}
		return nil
	}

	thresholds, err := config.LoadThresholds(cfg.Thresholds)
	if err != nil {
		return err
	}
	if cfg.Format == "json" {
		data, err := json.MarshalIndent(thresholds, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding thresholds: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	data, err := yamlv3.Marshal(orderedThresholds(thresholds))
	if err != nil {
		return fmt.Errorf("error encoding thresholds: %w", err)
	}
	fmt.Fprintf(w, "# calibration: %s\n", calibrationName())
	_, err = w.Write(data)
	return err
}

// orderedThresholds builds a YAML mapping with the families in evaluation
// order instead of map order.
func orderedThresholds(t cogniscore.Thresholds) *yamlv3.Node {
	root := &yamlv3.Node{Kind: yamlv3.MappingNode}
	for _, f := range cogniscore.Families {
		table, ok := t[f.Metric]
		if !ok {
			continue
		}
		var value yamlv3.Node
		if err := value.Encode(table); err != nil {
			continue
		}
		for _, item := range value.Content {
			item.Style = yamlv3.FlowStyle
		}
		root.Content = append(root.Content,
			&yamlv3.Node{Kind: yamlv3.ScalarNode, Value: string(f.Metric)},
			&value)
	}
	return root
}
