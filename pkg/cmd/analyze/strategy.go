package analyze

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitwall/f1insight/pkg/service"
	"github.com/pitwall/f1insight/pkg/tools/strategy"
)

var raceSession string

func NewStrategyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy year race",
		Short: "visualize the tyre strategies of a race",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrategy(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&raceSession,
		"session",
		"R",
		"session to analyze (R for the race, S for a sprint)")
	return cmd
}

func runStrategy(ctx context.Context, yearArg, race string) error {
	setupLogger()
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return fmt.Errorf("invalid year %q", yearArg)
	}
	provider, err := service.NewTimingProvider()
	if err != nil {
		return err
	}
	tool := strategy.NewTool(
		strategy.WithProvider(provider),
		strategy.WithArtifacts(service.NewArtifactStore()))
	text, err := tool.Visualize(ctx, year, race, raceSession)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
