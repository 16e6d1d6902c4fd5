package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

func runFixture() *model.RunResult {
	return &model.RunResult{
		RunID:     "run-123",
		Document:  "report.pdf",
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Results: []model.VerificationResult{
			{
				Claim:         model.Claim{Text: "GDP grew 3.1% in 2023", Type: model.ClaimTypeStatistic, Index: 0},
				Verdict:       model.VerdictVerified,
				Justification: "Source 1 confirms the figure.",
				Evidence:      []model.Evidence{{URL: "https://example.com/gdp", Title: "GDP", Snippet: "3.1%"}},
			},
			{
				Claim:         model.Claim{Text: "Claim with | pipe", Type: model.ClaimTypeFactual, Index: 1},
				Verdict:       model.VerdictError,
				Justification: "Search failed: provider unavailable",
				Evidence:      []model.Evidence{},
			},
		},
	}
}

func TestRenderer_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(true).WriteCSV(runFixture(), &buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	header := records[0]
	if header[0] != "Claim" || header[2] != "Verdict" {
		t.Errorf("unexpected header: %v", header)
	}
	if records[1][2] != "Verified" || records[1][4] != "https://example.com/gdp" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][4] != "N/A" {
		t.Errorf("claim without evidence should show N/A source, got %q", records[2][4])
	}
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(true).RenderMarkdown(runFixture(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Fact-Check Report: report.pdf",
		"| Verified | 1 |",
		"| Error | 1 |",
		"GDP grew 3.1% in 2023",
		"Claim with \\| pipe", // pipes escaped so the table survives
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(false).RenderJSON(runFixture(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded model.RunResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if decoded.RunID != "run-123" || len(decoded.Results) != 2 {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}
