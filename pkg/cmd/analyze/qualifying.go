package analyze

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitwall/f1insight/pkg/service"
	"github.com/pitwall/f1insight/pkg/tools/qualifying"
)

var qualiSession string

func NewQualifyingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qualifying year race",
		Short: "compare the fastest qualifying laps of the top 3 drivers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQualifying(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&qualiSession,
		"session",
		"Q",
		"qualifying session to analyze (Q, Q1, Q2, Q3)")
	return cmd
}

func runQualifying(ctx context.Context, yearArg, race string) error {
	setupLogger()
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return fmt.Errorf("invalid year %q", yearArg)
	}
	provider, err := service.NewTimingProvider()
	if err != nil {
		return err
	}
	tool := qualifying.NewTool(
		qualifying.WithProvider(provider),
		qualifying.WithArtifacts(service.NewArtifactStore()))
	text, err := tool.Compare(ctx, year, race, qualiSession)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
