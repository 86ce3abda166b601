package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	APIBaseURL        string // base URL of the timing data API
	APITimeout        string // timeout for timing data API requests
	CacheDir          string // directory for cached timing data (must be set explicitly)
	CacheTTL          string // expiry for in-memory session lookups
	OutputDir         string // directory for generated chart files
	OpenArtifacts     bool   // if true, open generated chart files in the default viewer
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // text vs json
	LogConfig         string // path to file containing zapfilter rules
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry
	ProfilingPort     int    // port for profiling
	HTTPServerAddr    string // listen addr for MCP HTTP server (insecure)
	TLSServerAddr     string // listen addr for MCP HTTP server (tls)
	TLSCertFile       string // path to TLS certificate
	TLSKeyFile        string // path to TLS key
	TLSCAFile         string // path to TLS CA
	TraefikCerts      string // path to traefik certs file
	TraefikCertDomain string // the domain to lookup within the traefik certs
)
