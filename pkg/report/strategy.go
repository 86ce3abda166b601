package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pitwall/f1insight/pkg/analysis"
	"github.com/pitwall/f1insight/pkg/model"
)

// StintEntry is one stint row of the strategy report.
type StintEntry struct {
	Abbreviation string
	Stint        model.Stint
	AvgPace      *time.Duration // nil when the stint has no timed laps
}

// StrategyReport is the text part of the tyre strategy analysis.
type StrategyReport struct {
	EventName    string
	Year         int
	SessionName  string
	TotalLaps    int
	Stints       []StintEntry // classification order, stints ascending
	ArtifactPath string
}

// Render produces the complete report.
func (r *StrategyReport) Render() string {
	sb := strings.Builder{}
	header := fmt.Sprintf("🏁 F1 TYRE STRATEGY: %s %d %s", r.EventName, r.Year, r.SessionName)
	sb.WriteString(header + "\n")
	sb.WriteString(strings.Repeat("=", len([]rune(header))) + "\n\n")

	if r.TotalLaps > 0 {
		sb.WriteString(fmt.Sprintf("Race distance: %d laps\n\n", r.TotalLaps))
	}
	sb.WriteString("📊 STINTS:\n")
	sb.WriteString(r.stintTable())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("📁 Visualization saved to: %s\n", r.ArtifactPath))
	return sb.String()
}

func (r *StrategyReport) stintTable() string {
	buf := new(bytes.Buffer)
	t := table.NewWriter()
	t.SetOutputMirror(buf)
	t.AppendHeader(table.Row{"Driver", "Stint", "Compound", "Laps", "Range", "Avg Pace"})
	prev := ""
	for _, e := range r.Stints {
		abbr := e.Abbreviation
		if abbr == prev {
			abbr = ""
		} else {
			prev = abbr
		}
		lastLap := e.Stint.StartLap + e.Stint.Laps - 1
		t.AppendRow(table.Row{
			abbr,
			e.Stint.Number,
			e.Stint.Compound.String(),
			e.Stint.Laps,
			fmt.Sprintf("%d-%d", e.Stint.StartLap, lastLap),
			formatPace(e.AvgPace),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return buf.String()
}

func formatPace(pace *time.Duration) string {
	if pace == nil {
		return "---"
	}
	return analysis.FormatLapTime(pace)
}
