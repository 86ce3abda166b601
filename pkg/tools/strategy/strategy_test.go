package strategy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitwall/f1insight/pkg/model"
	"github.com/pitwall/f1insight/pkg/tools"
	"github.com/pitwall/f1insight/testsupport/basedata"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestVisualizeTyreStrategy(t *testing.T) {
	provider := &basedata.StaticProvider{Data: basedata.SampleRaceSession()}
	dir := t.TempDir()
	tool := NewTool(
		WithProvider(provider),
		WithArtifacts(tools.NewArtifactStore(dir)))

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"year": float64(2023),
		"race": "Monaco",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "F1 TYRE STRATEGY: Monaco Grand Prix 2023 Race")
	assert.Contains(t, text, "Race distance: 78 laps")
	assert.Contains(t, text, "MEDIUM")
	assert.Contains(t, text, "INTERMEDIATE")
	assert.Contains(t, text, "1-54")
	assert.Contains(t, text, "55-78")
	// flat 78s stint pace
	assert.Contains(t, text, "1:18.000")

	wantFile := filepath.Join(dir, "f1_strategy_2023_Monaco_R_stints.png")
	assert.Contains(t, text, wantFile)
	_, statErr := os.Stat(wantFile)
	assert.NoError(t, statErr)
}

func TestVisualizeTyreStrategyMissingCompound(t *testing.T) {
	data := basedata.SampleRaceSession()
	for i := range data.Laps {
		data.Laps[i].Compound = model.CompoundUnknown
	}

	tool := NewTool(
		WithProvider(&basedata.StaticProvider{Data: data}),
		WithArtifacts(tools.NewArtifactStore(t.TempDir())))

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"year": float64(2023),
		"race": "Monaco",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Error visualizing tyre strategy")
	assert.Contains(t, text, "required column Compound is missing")
	assert.Contains(t, text, "The data source provides Compound data for this session")
}

func TestVisualizeTyreStrategyNoLaps(t *testing.T) {
	data := basedata.SampleRaceSession()
	data.Laps = nil

	tool := NewTool(
		WithProvider(&basedata.StaticProvider{Data: data}),
		WithArtifacts(tools.NewArtifactStore(t.TempDir())))

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"year": float64(2023),
		"race": "Monaco",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Error visualizing tyre strategy")
}

func TestVisualizeTyreStrategySkipsDriverWithoutLaps(t *testing.T) {
	data := basedata.SampleRaceSession()
	data.Drivers = append(data.Drivers, model.Driver{
		Number: 2, Abbreviation: "SAR", FullName: "Logan Sargeant",
		TeamName: "Williams", TeamColor: "37BEDD",
	})

	tool := NewTool(
		WithProvider(&basedata.StaticProvider{Data: data}),
		WithArtifacts(tools.NewArtifactStore(t.TempDir())))

	res, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"year": float64(2023),
		"race": "Monaco",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.NotContains(t, resultText(t, res), "SAR")
}

func TestStrategyDefinition(t *testing.T) {
	def := NewTool().Definition()
	assert.Equal(t, ToolName, def.Name)
	assert.Contains(t, def.InputSchema.Properties, "year")
	assert.Contains(t, def.InputSchema.Properties, "race")
	assert.Contains(t, def.InputSchema.Properties, "session")
	assert.Equal(t, []string{"year", "race"}, def.InputSchema.Required)
}
