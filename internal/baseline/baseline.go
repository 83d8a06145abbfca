package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dotcommander/cognishield/internal/scenario"
)

// Entry is the recorded outcome of one scenario.
type Entry struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Tier        int      `json:"tier"`
	Score       float64  `json:"score"`
	Triggers    []string `json:"triggers"`
	Fingerprint string   `json:"fingerprint"`
}

// Baseline is a snapshot of scenario outcomes under one calibration. A later
// run whose outcome differs from the snapshot has drifted.
type Baseline struct {
	Version     string  `json:"version"`
	CreatedAt   string  `json:"created_at"`
	Calibration string  `json:"calibration"`
	Entries     []Entry `json:"entries"`
	index       map[string]string // key -> fingerprint
}

// CreateBaseline snapshots a set of evaluation results
func CreateBaseline(calibration string, results []scenario.Result) *Baseline {
	entries := make([]Entry, 0, len(results))
	index := make(map[string]string, len(results))

	for _, r := range results {
		k := key(r.Scenario.Source, r.Scenario.Name)
		if _, dup := index[k]; dup {
			continue
		}
		e := Entry{
			Name:        r.Scenario.Name,
			Source:      r.Scenario.Source,
			Tier:        int(r.Alert.Tier),
			Score:       r.Alert.CogniScore,
			Triggers:    append([]string{}, r.Alert.Triggers...),
			Fingerprint: fingerprint(r),
		}
		entries = append(entries, e)
		index[k] = e.Fingerprint
	}

	// Sort for deterministic output
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Name < entries[j].Name
	})

	return &Baseline{
		Version:     "1.0",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Calibration: calibration,
		Entries:     entries,
		index:       index,
	}
}

// LoadBaseline loads a baseline from a JSON file
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.index = make(map[string]string, len(b.Entries))
	for _, e := range b.Entries {
		b.index[key(e.Source, e.Name)] = e.Fingerprint
	}

	return &b, nil
}

// SaveBaseline saves the baseline to a JSON file
func (b *Baseline) SaveBaseline(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// IsKnown reports whether the result matches the snapshot exactly
func (b *Baseline) IsKnown(r scenario.Result) bool {
	if b.index == nil {
		return false
	}
	fp, ok := b.index[key(r.Scenario.Source, r.Scenario.Name)]
	return ok && fp == fingerprint(r)
}

// Contains reports whether the snapshot has any entry for the scenario
func (b *Baseline) Contains(r scenario.Result) bool {
	_, ok := b.index[key(r.Scenario.Source, r.Scenario.Name)]
	return ok
}

// MarkDrift sets Drifted on every result that the snapshot records with a
// different outcome, and returns how many were marked. Scenarios the snapshot
// has never seen are not drift.
func (b *Baseline) MarkDrift(results []scenario.Result) int {
	n := 0
	for i := range results {
		if b.Contains(results[i]) && !b.IsKnown(results[i]) {
			results[i].Drifted = true
			n++
		}
	}
	return n
}

func key(source, name string) string {
	return source + "\x00" + name
}

// fingerprint hashes the outcome of a scenario: tier, score and the ordered
// trigger list. The metrics themselves are left out so that editing a
// scenario's inputs without changing its outcome is not drift.
func fingerprint(r scenario.Result) string {
	data := strings.Join([]string{
		r.Scenario.Source,
		r.Scenario.Name,
		strconv.Itoa(int(r.Alert.Tier)),
		strconv.FormatFloat(r.Alert.CogniScore, 'f', -1, 64),
		strings.Join(r.Alert.Triggers, "\n"),
	}, "|")

	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
