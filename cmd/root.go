package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	analyzeCmd "github.com/pitwall/f1insight/pkg/cmd/analyze"
	cacheCmd "github.com/pitwall/f1insight/pkg/cmd/cache"
	serverCmd "github.com/pitwall/f1insight/pkg/cmd/server"
	"github.com/pitwall/f1insight/pkg/config"
	"github.com/pitwall/f1insight/version"
)

const envPrefix = "F1I"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "f1insight",
	Short:   "MCP server providing Formula 1 analysis tools",
	Long:    ``,
	Version: version.FullVersion,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.f1insight.yml)")

	rootCmd.PersistentFlags().StringVar(&config.APIBaseURL, "api-url",
		"",
		"base URL of the timing data API (default is the public OpenF1 API)")
	rootCmd.PersistentFlags().StringVar(&config.APITimeout, "api-timeout",
		"1m",
		"timeout for timing data API requests")
	rootCmd.PersistentFlags().StringVar(&config.CacheDir, "cache-dir",
		"",
		"directory for cached timing data (required)")
	rootCmd.PersistentFlags().StringVar(&config.CacheTTL, "cache-ttl",
		"1h",
		"expiry for in-memory session lookups")
	rootCmd.PersistentFlags().StringVar(&config.OutputDir, "output-dir",
		"",
		"directory for generated chart files (default f1_visualizations)")

	// add commands here
	rootCmd.AddCommand(serverCmd.NewServerCmd())
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(cacheCmd.NewCacheCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".f1insight" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".f1insight")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range allCommands(rootCmd) {
		bindFlags(cmd, viper.GetViper())
	}
}

// allCommands returns the command tree below cmd, transports and
// analysis subcommands included.
func allCommands(cmd *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, c := range cmd.Commands() {
		cmds = append(cmds, c)
		cmds = append(cmds, allCommands(c)...)
	}
	return cmds
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --cache-dir to F1I_CACHE_DIR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
