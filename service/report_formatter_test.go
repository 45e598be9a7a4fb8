package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dariusokafor/wsmove/domain"
)

func sampleResult() *domain.MoveResult {
	return &domain.MoveResult{
		Executed: []domain.ExecutedMove{
			{Source: "libs/a/src/lib/util.ts", Target: "libs/b/src/lib/util.ts"},
		},
	}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, BuildReport(sampleResult()), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "moved libs/a/src/lib/util.ts -> libs/b/src/lib/util.ts") {
		t.Errorf("expected a moved line, got %q", out)
	}
	if !strings.Contains(out, "1 file(s) moved") {
		t.Errorf("expected a summary line, got %q", out)
	}
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, BuildReport(sampleResult()), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"source": "libs/a/src/lib/util.ts"`) {
		t.Errorf("expected source field in JSON output, got %q", out)
	}
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, BuildReport(sampleResult()), "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "source: libs/a/src/lib/util.ts") {
		t.Errorf("expected source field in YAML output, got %q", out)
	}
}

func TestWriteReportRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, BuildReport(sampleResult()), "xml")
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestBuildReportCountsMatchEntries(t *testing.T) {
	report := BuildReport(&domain.MoveResult{})
	if report.Count != 0 || len(report.Moved) != 0 {
		t.Error("expected an empty result to produce a zero-count report")
	}
}
