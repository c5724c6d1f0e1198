package main

import (
	"io"

	"github.com/germanamz/multiquery/pkg/tools/mcpserver"
	"github.com/germanamz/multiquery/pkg/tools/querytools"
	"github.com/germanamz/multiquery/pkg/tools/toolbox"
	"github.com/spf13/cobra"
)

func newMCPCmd(o *options, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve query_model and check_keys as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := o.setup(stderr)
			if err != nil {
				return err
			}

			tb := toolbox.New(querytools.New(env.client)...)
			srv := mcpserver.New("multiquery", version, tb, env.log)

			env.log.Info("mcp server started", "tools", len(tb.Tools()))

			if err := srv.Serve(cmd.Context(), stdin, stdout); err != nil {
				return err
			}

			return env.flushMetrics()
		},
	}
}
