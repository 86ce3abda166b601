// Package report renders the textual tool responses.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pitwall/f1insight/pkg/analysis"
)

// QualifyingEntry is one classification row of the qualifying report.
type QualifyingEntry struct {
	Position     int
	Abbreviation string
	TeamName     string
	LapTime      *time.Duration
	Gap          *time.Duration // nil for pole or missing time
	Segment      string         // segment that provided the time (Q3, Q2, Q1)
}

// QualifyingReport is the text part of the qualifying comparison.
type QualifyingReport struct {
	EventName    string
	Year         int
	SessionName  string
	Results      []QualifyingEntry // classification order, usually top 10
	Compared     []QualifyingEntry // drivers on the telemetry chart
	ArtifactPath string
}

// Render produces the complete report.
func (r *QualifyingReport) Render() string {
	sb := strings.Builder{}
	header := fmt.Sprintf("🏆 F1 QUALIFYING ANALYSIS: %s %d", r.EventName, r.Year)
	sb.WriteString(header + "\n")
	sb.WriteString(strings.Repeat("=", len([]rune(header))) + "\n\n")

	sb.WriteString(fmt.Sprintf("📊 TOP %d QUALIFYING RESULTS:\n", len(r.Results)))
	sb.WriteString(r.resultTable())
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("🏁 TOP %d TELEMETRY COMPARISON:\n", len(r.Compared)))
	for _, e := range r.Compared {
		sb.WriteString(fmt.Sprintf("   • %s: %s (%s)\n",
			e.Abbreviation, analysis.FormatLapTime(e.LapTime), e.TeamName))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("📁 Visualization saved to: %s\n", r.ArtifactPath))
	return sb.String()
}

func (r *QualifyingReport) resultTable() string {
	buf := new(bytes.Buffer)
	t := table.NewWriter()
	t.SetOutputMirror(buf)
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Time", "Gap to Pole"})
	for _, e := range r.Results {
		t.AppendRow(table.Row{
			fmt.Sprintf("P%d", e.Position),
			e.Abbreviation,
			e.TeamName,
			formatTimeWithSegment(e),
			formatGap(e.Gap),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return buf.String()
}

// formatTimeWithSegment tags lap times that come from an earlier
// segment than Q3, e.g. "1:28.780 (Q2)".
func formatTimeWithSegment(e QualifyingEntry) string {
	formatted := analysis.FormatLapTime(e.LapTime)
	if e.LapTime != nil && e.Segment != "" && e.Segment != "Q3" {
		return fmt.Sprintf("%s (%s)", formatted, e.Segment)
	}
	return formatted
}

func formatGap(gap *time.Duration) string {
	if gap == nil {
		return "---"
	}
	return fmt.Sprintf("%+.3fs", gap.Seconds())
}
