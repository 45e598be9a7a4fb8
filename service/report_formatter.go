package service

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dariusokafor/wsmove/domain"
)

// MoveReport is the serialisable shape of a completed move, independent
// of domain.MoveResult's in-memory form, so the on-disk report format
// can evolve without dragging the engine's types along with it.
type MoveReport struct {
	Moved []MovedEntry `json:"moved" yaml:"moved"`
	Count int          `json:"count" yaml:"count"`
}

// MovedEntry is one executed move in a report.
type MovedEntry struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// BuildReport converts an engine result into its report shape.
func BuildReport(result *domain.MoveResult) MoveReport {
	report := MoveReport{Moved: make([]MovedEntry, 0, len(result.Executed))}
	for _, m := range result.Executed {
		report.Moved = append(report.Moved, MovedEntry{Source: string(m.Source), Target: string(m.Target)})
	}
	report.Count = len(report.Moved)
	return report
}

// WriteReport renders report to writer in the requested format: "text"
// (one "moved X -> Y" line per entry plus a summary line), "json", or
// "yaml". An unrecognised format is an error, not a silent fallback.
func WriteReport(w io.Writer, report MoveReport, format string) error {
	switch format {
	case "", "text":
		for _, m := range report.Moved {
			fmt.Fprintf(w, "moved %s -> %s\n", m.Source, m.Target)
		}
		fmt.Fprintf(w, "%d file(s) moved\n", report.Count)
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(report)
	default:
		return fmt.Errorf("unsupported report format %q (want text, json, or yaml)", format)
	}
}
