package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pitwall/f1insight/pkg/model"
)

func toDur(d time.Duration) *time.Duration { return &d }

func TestQualifyingReportRender(t *testing.T) {
	pole := toDur(88*time.Second + 241*time.Millisecond)
	r := &QualifyingReport{
		EventName:   "Monaco Grand Prix",
		Year:        2023,
		SessionName: "Qualifying",
		Results: []QualifyingEntry{
			{Position: 1, Abbreviation: "VER", TeamName: "Red Bull Racing", LapTime: pole, Segment: "Q3"},
			{Position: 2, Abbreviation: "LEC", TeamName: "Ferrari",
				LapTime: toDur(88*time.Second + 325*time.Millisecond),
				Gap:     toDur(84 * time.Millisecond), Segment: "Q3"},
			{Position: 11, Abbreviation: "ALB", TeamName: "Williams",
				LapTime: toDur(89*time.Second + 500*time.Millisecond),
				Gap:     toDur(1259 * time.Millisecond), Segment: "Q2"},
			{Position: 18, Abbreviation: "SAR", TeamName: "Williams", Segment: ""},
		},
		Compared: []QualifyingEntry{
			{Position: 1, Abbreviation: "VER", TeamName: "Red Bull Racing", LapTime: pole},
		},
		ArtifactPath: "f1_visualizations/f1_qualifying_2023_Monaco_Q_top3_comparison.png",
	}
	out := r.Render()

	assert.Contains(t, out, "🏆 F1 QUALIFYING ANALYSIS: Monaco Grand Prix 2023")
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "1:28.241")
	assert.Contains(t, out, "+0.084s")
	// pole has no gap
	assert.Contains(t, out, "---")
	// fallback segment is tagged
	assert.Contains(t, out, "1:29.500 (Q2)")
	// missing time
	assert.Contains(t, out, "No Time")
	assert.Contains(t, out, "Williams")
	assert.Contains(t, out, "• VER: 1:28.241 (Red Bull Racing)")
	assert.Contains(t, out, "📁 Visualization saved to: f1_visualizations/f1_qualifying_2023_Monaco_Q_top3_comparison.png")
	// light table style box drawing
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestStrategyReportRender(t *testing.T) {
	r := &StrategyReport{
		EventName:   "Monaco Grand Prix",
		Year:        2023,
		SessionName: "Race",
		TotalLaps:   78,
		Stints: []StintEntry{
			{Abbreviation: "VER", AvgPace: toDur(78 * time.Second),
				Stint: model.Stint{Number: 1, Compound: model.CompoundMedium, StartLap: 1, Laps: 54}},
			{Abbreviation: "VER", AvgPace: toDur(80 * time.Second),
				Stint: model.Stint{Number: 2, Compound: model.CompoundIntermediate, StartLap: 55, Laps: 24}},
			{Abbreviation: "ALO",
				Stint: model.Stint{Number: 1, Compound: model.CompoundHard, StartLap: 1, Laps: 53}},
		},
		ArtifactPath: "f1_visualizations/f1_strategy_2023_Monaco_R_stints.png",
	}
	out := r.Render()

	assert.Contains(t, out, "🏁 F1 TYRE STRATEGY: Monaco Grand Prix 2023 Race")
	assert.Contains(t, out, "Race distance: 78 laps")
	assert.Contains(t, out, "MEDIUM")
	assert.Contains(t, out, "1-54")
	assert.Contains(t, out, "55-78")
	assert.Contains(t, out, "1:18.000")
	// stint without timed laps
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "📁 Visualization saved to: f1_visualizations/f1_strategy_2023_Monaco_R_stints.png")

	// driver abbreviation only on its first row
	if strings.Count(out, "VER") != 1 {
		t.Errorf("expected VER exactly once, got %d occurrences", strings.Count(out, "VER"))
	}
}
