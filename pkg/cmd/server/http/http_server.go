package http

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // only reachable via the opt-in profiling port
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/config"
	"github.com/pitwall/f1insight/pkg/service"
)

const shutdownGrace = 5 * time.Second

//nolint:funlen // readability
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "starts the MCP server with the streamable HTTP transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVarP(&config.HTTPServerAddr,
		"http-server-addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().StringVar(&config.TLSServerAddr,
		"tls-server-addr",
		"",
		"HTTP server listen address (TLS)")
	cmd.Flags().StringVar(&config.TLSCertFile,
		"tls-cert",
		"",
		"path to TLS certificate")
	cmd.Flags().StringVar(&config.TLSKeyFile,
		"tls-key",
		"",
		"path to TLS key")
	cmd.Flags().StringVar(&config.TLSCAFile,
		"tls-ca",
		"",
		"path to TLS root CA (enables client cert verification)")
	cmd.Flags().StringVar(&config.TraefikCerts,
		"traefik-certs",
		"",
		"path to traefik acme.json")
	cmd.Flags().StringVar(&config.TraefikCertDomain,
		"traefik-cert-domain",
		"",
		"the domain to lookup within the traefik certs")
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
	cmd.Flags().IntVar(&config.ProfilingPort,
		"profiling-port",
		0,
		"port to use for providing profiling data")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

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

//nolint:funlen,cyclop // readability
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
		log.String("addr", config.HTTPServerAddr),
		log.String("tls-addr", config.TLSServerAddr),
	)

	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // bound to localhost
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}

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
	mcpServer := service.NewMCPServer(provider, service.NewArtifactStore())

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer))
	handler := h2c.NewHandler(newCORS().Handler(mux), &http2.Server{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := make([]*http.Server, 0, 2)
	httpServer := &http.Server{
		Addr:              config.HTTPServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	servers = append(servers, httpServer)
	go func() {
		log.Info("Starting MCP HTTP server", log.String("addr", config.HTTPServerAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server could not be started", log.ErrorField(err))
			stop()
		}
	}()

	if config.TLSServerAddr != "" {
		if tlsConfig := newTLSConfigProvider(ctx); tlsConfig != nil {
			tlsServer := &http.Server{
				Addr:              config.TLSServerAddr,
				Handler:           handler,
				TLSConfig:         tlsConfig,
				ReadHeaderTimeout: 10 * time.Second,
			}
			servers = append(servers, tlsServer)
			go func() {
				log.Info("Starting MCP HTTPS server", log.String("addr", config.TLSServerAddr))
				err := tlsServer.ListenAndServeTLS("", "")
				if err != nil && err != http.ErrServerClosed {
					log.Error("server could not be started", log.ErrorField(err))
					stop()
				}
			}()
		} else {
			log.Error("no usable TLS configuration, TLS listener disabled")
		}
	}

	log.Info("Server started")
	setupGoRoutinesDump()

	<-ctx.Done()
	log.Debug("Got shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("server shutdown", log.ErrorField(err))
		}
	}
	if telemetry != nil {
		telemetry.Shutdown()
	}

	log.Info("Server terminated")
	return nil
}

func setupGoRoutinesDump() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			fmt.Printf("=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n",
				buf[:stacklen])
		}
	}()
}

func newCORS() *cors.Cors {
	// Browser based MCP clients need a permissive CORS setup.
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			// Allow all origins, which effectively disables CORS.
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			// Content-Type is in the default safelist.
			"Accept",
			"Accept-Encoding",
			"Content-Encoding",
			// clients resume their session with this one
			"Mcp-Session-Id",
		},
		// Let browsers cache CORS information for longer, which reduces the number
		// of preflight requests. Any changes to ExposedHeaders won't take effect
		// until the cached data expires. FF caps this value at 24h, and modern
		// Chrome caps it at 2h.
		MaxAge: int(2 * time.Hour / time.Second),
	})
}
