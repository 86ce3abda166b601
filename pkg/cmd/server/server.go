package server

import (
	"github.com/spf13/cobra"

	"github.com/pitwall/f1insight/pkg/cmd/server/http"
	"github.com/pitwall/f1insight/pkg/cmd/server/stdio"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "commands to run the MCP server",
	}
	cmd.AddCommand(stdio.NewServerCmd())
	cmd.AddCommand(http.NewServerCmd())
	return cmd
}
