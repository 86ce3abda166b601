package stdio

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/config"
	"github.com/pitwall/f1insight/pkg/service"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "starts the MCP server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format")
	cmd.Flags().StringVar(&config.LogConfig,
		"log-config",
		"",
		"file containing logger filter rules")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// buildLogger writes to stderr, stdout carries the MCP protocol.
func buildLogger() (*log.Logger, error) {
	opts := []log.Option{log.WithCaller(true), log.AddCallerSkip(1)}
	if config.LogConfig != "" {
		data, err := os.ReadFile(config.LogConfig)
		if err != nil {
			return nil, err
		}
		filter, err := log.WithFilterRules(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter)
	}
	switch config.LogFormat {
	case "json":
		return log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			opts...), nil
	default:
		return log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			opts...), nil
	}
}

func startServer() error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("api-url", config.APIBaseURL),
		log.String("cache-dir", config.CacheDir),
		log.String("output-dir", config.OutputDir),
	)

	var telemetry *config.Telemetry
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		if telemetry, err = config.SetupTelemetry(context.Background()); err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	provider, err := service.NewTimingProvider()
	if err != nil {
		log.Error("server could not be started", log.ErrorField(err))
		return err
	}
	srv := service.NewMCPServer(provider, service.NewArtifactStore())

	setupGoRoutinesDump()

	log.Info("Starting MCP server on stdio")
	err = server.ServeStdio(srv)
	if telemetry != nil {
		telemetry.Shutdown()
	}
	log.Info("Server terminated")
	return err
}

func setupGoRoutinesDump() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			// stderr, the protocol owns stdout
			fmt.Fprintf(os.Stderr,
				"=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n",
				buf[:stacklen])
		}
	}()
}
