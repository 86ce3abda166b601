package analyze

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/config"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "run analyses from the command line",
	}
	cmd.PersistentFlags().BoolVar(&config.OpenArtifacts,
		"open-artifacts",
		false,
		"open generated charts in the default viewer")

	cmd.AddCommand(NewQualifyingCmd())
	cmd.AddCommand(NewStrategyCmd())
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// setupLogger keeps stdout for the report, logs go to stderr.
func setupLogger() {
	switch config.LogFormat {
	case "json":
		log.ResetDefault(log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel)))
	default:
		log.ResetDefault(log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel)))
	}
}
