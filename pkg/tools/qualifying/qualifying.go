package qualifying

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/analysis"
	"github.com/pitwall/f1insight/pkg/chart"
	"github.com/pitwall/f1insight/pkg/model"
	"github.com/pitwall/f1insight/pkg/report"
	"github.com/pitwall/f1insight/pkg/style"
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/tools"
)

// ToolName is the name the tool is registered under.
const ToolName = "compare_qualifying_laps"

const (
	minDrivers = 3  // need at least this many classified drivers
	topResults = 10 // rows in the results table
	topCompare = 3  // drivers on the telemetry chart
)

var meter = otel.Meter("f1insight-tools")

type Option func(*Tool)

func WithProvider(arg timing.Provider) Option {
	return func(t *Tool) {
		t.provider = arg
	}
}

func WithArtifacts(arg *tools.ArtifactStore) Option {
	return func(t *Tool) {
		t.artifacts = arg
	}
}

func WithTracer(arg trace.Tracer) Option {
	return func(t *Tool) {
		t.tracer = arg
	}
}

// Tool compares the fastest qualifying laps of the top drivers of a
// session and renders a speed/throttle/brake comparison chart.
type Tool struct {
	provider  timing.Provider
	artifacts *tools.ArtifactStore
	log       *log.Logger
	tracer    trace.Tracer
	duration  metric.Float64Histogram
}

func NewTool(opts ...Option) *Tool {
	ret := &Tool{
		log: log.Default().Named("tools.qualifying"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("f1insight")
	}
	if ret.artifacts == nil {
		ret.artifacts = tools.NewArtifactStore("")
	}
	ret.duration, _ = meter.Float64Histogram("tool_compare_qualifying_laps",
		metric.WithDescription("processing duration of qualifying comparisons"),
		metric.WithUnit("s"))
	return ret
}

func (t *Tool) Definition() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Compare the fastest qualifying laps of the top 3 drivers "+
			"with lap time analysis and a speed/throttle/brake telemetry chart."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Season year (e.g. 2023)")),
		mcp.WithString("race",
			mcp.Required(),
			mcp.Description("Race name or round number (e.g. 'Monaco', '7')")),
		mcp.WithString("session",
			mcp.DefaultString("Q"),
			mcp.Description("Qualifying session to analyze"),
			mcp.Enum("Q", "Q1", "Q2", "Q3")),
	)
}

// Handle implements the MCP tool contract. Domain errors are reported
// as tool results, not as Go errors.
func (t *Tool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	race, err := req.RequireString("race")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	session := req.GetString("session", "Q")

	invocation := uuid.Must(uuid.NewV4()).String()
	ctx, span := t.tracer.Start(ctx, ToolName, trace.WithAttributes(
		attribute.String("invocation", invocation),
		attribute.Int("year", year),
		attribute.String("race", race),
		attribute.String("session", session)))
	defer span.End()

	start := time.Now()
	t.log.Debug("comparing qualifying laps",
		log.String("invocation", invocation),
		log.Int("year", year),
		log.String("race", race),
		log.String("session", session))

	text, err := t.Compare(ctx, year, race, session)
	if err != nil {
		t.log.Error("qualifying comparison failed",
			log.String("invocation", invocation),
			log.ErrorField(err))
		return mcp.NewToolResultError(tools.ErrorReport("analyzing qualifying laps", err,
			tools.Hints(err,
				"Year and race name are correct",
				"Session type is valid (Q, Q1, Q2, Q3)",
				"Telemetry data is available for this session")...)), nil
	}
	t.duration.Record(ctx, time.Since(start).Seconds())
	return mcp.NewToolResultText(text), nil
}

// Compare runs the analysis and returns the rendered report.
//
//nolint:funlen // readability
func (t *Tool) Compare(ctx context.Context, year int, race, session string) (string, error) {
	data, err := t.provider.Session(ctx, year, race, session)
	if err != nil {
		return "", err
	}
	results := data.TopResults(topResults)
	if len(results) < minDrivers {
		return "", fmt.Errorf("%w: found %d, need %d",
			analysis.ErrInsufficientDrivers, len(results), minDrivers)
	}

	poleTime, _ := results[0].QualifyingLap()
	entries := make([]report.QualifyingEntry, 0, len(results))
	rows := make([]model.ResultRow, 0, len(results))
	for _, row := range results {
		driver, ok := data.Driver(row.DriverNumber)
		if !ok {
			continue
		}
		lapTime, segment := row.QualifyingLap()
		var gap *time.Duration
		if row.Position > 1 && lapTime != nil && poleTime != nil {
			d := *lapTime - *poleTime
			gap = &d
		}
		entries = append(entries, report.QualifyingEntry{
			Position:     row.Position,
			Abbreviation: driver.Abbreviation,
			TeamName:     driver.TeamName,
			LapTime:      lapTime,
			Gap:          gap,
			Segment:      segment,
		})
		rows = append(rows, row)
	}
	if len(entries) < minDrivers {
		return "", fmt.Errorf("%w: only %d of the classified drivers are known",
			analysis.ErrInsufficientDrivers, len(entries))
	}

	compared := entries[:topCompare]
	traces := make([]chart.DriverTrace, 0, topCompare)
	for i, entry := range compared {
		if entry.Segment != "" && entry.Segment != "Q3" {
			t.log.Info("using fallback qualifying segment",
				log.String("driver", entry.Abbreviation),
				log.String("segment", entry.Segment))
		}
		row := rows[i]
		driver, _ := data.Driver(row.DriverNumber)
		fastest, ok := analysis.FastestLap(data.DriverLaps(row.DriverNumber))
		if !ok {
			return "", fmt.Errorf("%w: no timed lap for %s",
				timing.ErrNoData, driver.Abbreviation)
		}
		telemetry, err := t.provider.LapTelemetry(ctx, data.SessionKey, fastest)
		if err != nil {
			return "", fmt.Errorf("loading telemetry for %s: %w", driver.Abbreviation, err)
		}
		lineColor, fellBack := style.TeamColor(driver.TeamColor, i)
		if fellBack {
			t.log.Info("team color unavailable, using fallback palette",
				log.String("driver", driver.Abbreviation))
		}
		traces = append(traces, chart.DriverTrace{
			Label:  fmt.Sprintf("%s - %s", driver.Abbreviation, analysis.FormatLapTime(entry.LapTime)),
			Color:  lineColor,
			Dashes: chart.LineDashes(i),
			Frames: telemetry.Frames,
		})
	}

	figure := chart.TelemetryChart{
		Title: fmt.Sprintf("%s %d %s - Top %d Fastest Lap Comparison",
			data.EventName, data.Year, data.SessionName, topCompare),
		Traces: traces,
	}
	path, err := t.artifacts.Save(tools.QualifyingChartName(year, race, session), figure.WritePNG)
	if err != nil {
		return "", fmt.Errorf("rendering comparison chart: %w", err)
	}

	rep := report.QualifyingReport{
		EventName:    data.EventName,
		Year:         data.Year,
		SessionName:  data.SessionName,
		Results:      entries,
		Compared:     compared,
		ArtifactPath: path,
	}
	return rep.Render(), nil
}
