package main

import (
	"github.com/spf13/cobra"

	root "github.com/openkcm/tzlabel"
	"github.com/openkcm/tzlabel/internal/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the tzlabel MCP server (stdio)",
		Long: `Start a Model Context Protocol (MCP) server that exposes the
format_timestamp and timezone_label tools via STDIO.

Example:

  tzlabel mcp --timezone Europe/Berlin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}

			return mcpserver.New(root.Version, f, a.locale).ServeStdio(cmd.Context())
		},
	}
}
