package strategy

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
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/tools"
)

// ToolName is the name the tool is registered under.
const ToolName = "visualize_tyre_strategy"

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

// Tool renders the tyre strategy of a race as a horizontal stint chart
// plus a per-stint pace table.
type Tool struct {
	provider  timing.Provider
	artifacts *tools.ArtifactStore
	log       *log.Logger
	tracer    trace.Tracer
	duration  metric.Float64Histogram
}

func NewTool(opts ...Option) *Tool {
	ret := &Tool{
		log: log.Default().Named("tools.strategy"),
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
	ret.duration, _ = meter.Float64Histogram("tool_visualize_tyre_strategy",
		metric.WithDescription("processing duration of strategy visualizations"),
		metric.WithUnit("s"))
	return ret
}

func (t *Tool) Definition() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Visualize the tyre strategies of a race as a stint chart "+
			"in finishing order, with compound and average pace per stint."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Season year (e.g. 2023)")),
		mcp.WithString("race",
			mcp.Required(),
			mcp.Description("Race name or round number (e.g. 'Monaco', '7')")),
		mcp.WithString("session",
			mcp.DefaultString("R"),
			mcp.Description("Session to analyze (R for the race, S for a sprint)")),
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
	session := req.GetString("session", "R")

	invocation := uuid.Must(uuid.NewV4()).String()
	ctx, span := t.tracer.Start(ctx, ToolName, trace.WithAttributes(
		attribute.String("invocation", invocation),
		attribute.Int("year", year),
		attribute.String("race", race),
		attribute.String("session", session)))
	defer span.End()

	start := time.Now()
	t.log.Debug("visualizing tyre strategy",
		log.String("invocation", invocation),
		log.Int("year", year),
		log.String("race", race),
		log.String("session", session))

	text, err := t.Visualize(ctx, year, race, session)
	if err != nil {
		t.log.Error("strategy visualization failed",
			log.String("invocation", invocation),
			log.ErrorField(err))
		return mcp.NewToolResultError(tools.ErrorReport("visualizing tyre strategy", err,
			tools.Hints(err,
				"Year and race name are correct",
				"Session type is valid (R for the race, S for a sprint)",
				"Stint data is available for this session")...)), nil
	}
	t.duration.Record(ctx, time.Since(start).Seconds())
	return mcp.NewToolResultText(text), nil
}

// Visualize runs the analysis and returns the rendered report.
//
//nolint:funlen // readability
func (t *Tool) Visualize(ctx context.Context, year int, race, session string) (string, error) {
	data, err := t.provider.Session(ctx, year, race, session)
	if err != nil {
		return "", err
	}
	if len(data.Laps) == 0 {
		return "", fmt.Errorf("%w: no laps in %s %s", timing.ErrNoData, data.EventName, data.SessionName)
	}
	if !hasCompoundData(data.Laps) {
		return "", &analysis.MissingColumnError{Column: "Compound"}
	}

	totalLaps := 0
	for i := range data.Laps {
		if data.Laps[i].LapNumber > totalLaps {
			totalLaps = data.Laps[i].LapNumber
		}
	}

	drivers := make([]chart.DriverStrategy, 0, len(data.Drivers))
	stints := make([]report.StintEntry, 0, len(data.Drivers)*2)
	for _, driver := range classifiedDrivers(data) {
		laps := data.DriverLaps(driver.Number)
		if len(laps) == 0 {
			t.log.Debug("driver has no laps, skipping",
				log.String("driver", driver.Abbreviation))
			continue
		}
		segments := analysis.SegmentStints(laps)
		drivers = append(drivers, chart.DriverStrategy{
			Abbreviation: driver.Abbreviation,
			Stints:       segments,
		})
		for _, stint := range segments {
			stints = append(stints, report.StintEntry{
				Abbreviation: driver.Abbreviation,
				Stint:        stint,
				AvgPace:      stintPace(laps, stint),
			})
		}
	}
	if len(drivers) == 0 {
		return "", fmt.Errorf("%w: nobody completed a lap", analysis.ErrInsufficientDrivers)
	}

	figure := chart.StrategyChart{
		Title: fmt.Sprintf("%s %d - Tyre Strategies (%s)",
			data.EventName, data.Year, data.SessionName),
		TotalLaps: totalLaps,
		Drivers:   drivers,
	}
	path, err := t.artifacts.Save(tools.StrategyChartName(year, race, session), figure.WritePNG)
	if err != nil {
		return "", fmt.Errorf("rendering strategy chart: %w", err)
	}

	rep := report.StrategyReport{
		EventName:    data.EventName,
		Year:         data.Year,
		SessionName:  data.SessionName,
		TotalLaps:    totalLaps,
		Stints:       stints,
		ArtifactPath: path,
	}
	return rep.Render(), nil
}

// classifiedDrivers returns the drivers in finishing order, appending
// any drivers missing from the classification at the end.
func classifiedDrivers(data *model.SessionData) []model.Driver {
	ret := make([]model.Driver, 0, len(data.Drivers))
	seen := make(map[int]bool, len(data.Drivers))
	for _, row := range data.TopResults(len(data.Results)) {
		if driver, ok := data.Driver(row.DriverNumber); ok {
			ret = append(ret, driver)
			seen[driver.Number] = true
		}
	}
	for _, driver := range data.Drivers {
		if !seen[driver.Number] {
			ret = append(ret, driver)
		}
	}
	return ret
}

// hasCompoundData reports whether at least one lap carries a known
// compound. Feeds with stint data deliver it for every covered lap.
func hasCompoundData(laps []model.Lap) bool {
	for i := range laps {
		if laps[i].Compound != model.CompoundUnknown && laps[i].Compound != "" {
			return true
		}
	}
	return false
}

func stintPace(laps []model.Lap, stint model.Stint) *time.Duration {
	inStint := make([]model.Lap, 0, stint.Laps)
	for _, lap := range laps {
		if lap.LapNumber >= stint.StartLap && lap.LapNumber < stint.StartLap+stint.Laps {
			inStint = append(inStint, lap)
		}
	}
	if pace, ok := analysis.AverageLapTime(inStint); ok {
		return &pace
	}
	return nil
}
