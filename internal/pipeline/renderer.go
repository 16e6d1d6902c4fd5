package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

// Renderer writes a RunResult to the supported output formats
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full RunResult as indented JSON
func (r *Renderer) RenderJSON(run *model.RunResult, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the claim/verdict table as a Markdown report
func (r *Renderer) RenderMarkdown(run *model.RunResult, path string) error {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# Fact-Check Report: %s\n\n", run.Document)
	fmt.Fprintf(&buf, "Run `%s` started %s, took %s, %d claims.\n\n",
		run.RunID, run.StartedAt.Format("2006-01-02 15:04:05 UTC"), run.Duration.Round(time.Millisecond), len(run.Results))

	tally := run.Tally()
	buf.WriteString("| Verdict | Count |\n|---|---|\n")
	for _, v := range model.AllVerdicts {
		if tally[v] > 0 {
			fmt.Fprintf(&buf, "| %s | %d |\n", v, tally[v])
		}
	}
	buf.WriteString("\n## Claims\n\n")
	buf.WriteString("| # | Claim | Verdict | Justification | Top Source |\n|---|---|---|---|---|\n")

	for _, res := range run.Results {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s |\n",
			res.Claim.Index+1,
			escapeCell(res.Claim.Text),
			res.Verdict,
			escapeCell(res.Justification),
			topSource(res.Evidence))
	}

	if r.includeFooter {
		buf.WriteString("\n---\nGenerated by veridoc. Verdicts are model judgments against live web search results, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderCSV writes the result table as CSV, one row per claim
func (r *Renderer) RenderCSV(run *model.RunResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := r.WriteCSV(run, f); err != nil {
		return err
	}
	return nil
}

// WriteCSV streams the result table to w
func (r *Renderer) WriteCSV(run *model.RunResult, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Claim", "Type", "Verdict", "Justification", "Source URL"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, res := range run.Results {
		row := []string{
			res.Claim.Text,
			string(res.Claim.Type),
			string(res.Verdict),
			res.Justification,
			topSource(res.Evidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderSummary prints the per-verdict tally to stdout
func (r *Renderer) RenderSummary(run *model.RunResult) {
	fmt.Printf("\n%s: %d claims in %s\n", run.Document, len(run.Results), run.Duration.Round(time.Millisecond))

	tally := run.Tally()
	for _, v := range model.AllVerdicts {
		if tally[v] > 0 {
			fmt.Printf("  %-13s %d\n", v, tally[v])
		}
	}
}

func topSource(evidence []model.Evidence) string {
	if len(evidence) == 0 {
		return "N/A"
	}
	return evidence[0].URL
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
