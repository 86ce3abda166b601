package service

import (
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/browser"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/config"
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/timing/diskcache"
	"github.com/pitwall/f1insight/pkg/timing/openf1"
	"github.com/pitwall/f1insight/pkg/tools"
	"github.com/pitwall/f1insight/pkg/tools/qualifying"
	"github.com/pitwall/f1insight/pkg/tools/strategy"
	"github.com/pitwall/f1insight/version"
)

const serverName = "F1 Insight"

const instructions = `Formula 1 analysis tools backed by the OpenF1 timing API.
compare_qualifying_laps compares the fastest qualifying laps of the top 3
drivers, visualize_tyre_strategy draws the stint chart of a race. Both write
a PNG chart and reference its path in the result text.`

// NewTimingProvider builds the OpenF1 provider from the active config.
// The disk cache is mandatory so repeated calls do not hammer the
// public API.
func NewTimingProvider() (timing.Provider, error) {
	cache, err := diskcache.New(config.CacheDir)
	if err != nil {
		return nil, err
	}
	clientOpts := []openf1.ClientOption{openf1.WithCache(cache)}
	if config.APIBaseURL != "" {
		clientOpts = append(clientOpts, openf1.WithBaseURL(config.APIBaseURL))
	}
	if timeout, err := time.ParseDuration(config.APITimeout); err == nil {
		clientOpts = append(clientOpts, openf1.WithTimeout(timeout))
	} else {
		log.Warn("invalid api-timeout value, using default", log.String("value", config.APITimeout))
	}

	providerOpts := []openf1.Option{openf1.WithClient(openf1.NewClient(clientOpts...))}
	if ttl, err := time.ParseDuration(config.CacheTTL); err == nil {
		providerOpts = append(providerOpts, openf1.WithSessionTTL(ttl))
	} else {
		log.Warn("invalid cache-ttl value, using default", log.String("value", config.CacheTTL))
	}
	return openf1.NewProvider(providerOpts...), nil
}

// NewArtifactStore builds the chart store from the active config. With
// open-artifacts set, every chart is opened in the default viewer.
func NewArtifactStore() *tools.ArtifactStore {
	opts := []tools.ArtifactOption{}
	if config.OpenArtifacts {
		opts = append(opts, tools.WithOnArtifact(func(path string) {
			if err := browser.OpenFile(path); err != nil {
				log.Warn("could not open artifact", log.String("path", path), log.ErrorField(err))
			}
		}))
	}
	return tools.NewArtifactStore(config.OutputDir, opts...)
}

// NewMCPServer registers the analysis tools on a fresh MCP server.
func NewMCPServer(provider timing.Provider, artifacts *tools.ArtifactStore) *server.MCPServer {
	srv := server.NewMCPServer(serverName, version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions))

	qualiTool := qualifying.NewTool(
		qualifying.WithProvider(provider),
		qualifying.WithArtifacts(artifacts))
	srv.AddTool(qualiTool.Definition(), qualiTool.Handle)

	strategyTool := strategy.NewTool(
		strategy.WithProvider(provider),
		strategy.WithArtifacts(artifacts))
	srv.AddTool(strategyTool.Definition(), strategyTool.Handle)

	return srv
}
