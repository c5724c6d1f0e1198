// Package mcpserver serves a toolbox over the MCP protocol using the official
// MCP Go SDK.
package mcpserver

import (
	"context"
	"io"
	"log/slog"

	"github.com/germanamz/multiquery/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer exposes every tool of a ToolBox as an MCP tool.
type MCPServer struct {
	server *mcp.Server
	tools  *toolbox.ToolBox
	log    *slog.Logger
}

// New creates an MCPServer with the given name and version serving tb.
// A nil logger discards everything.
func New(name, version string, tb *toolbox.ToolBox, log *slog.Logger) *MCPServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &MCPServer{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		tools: tb,
		log:   log,
	}

	for _, t := range tb.Tools() {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.handler(t.Name))
	}

	return s
}

// Serve reads requests from in and writes responses to out. It blocks until
// ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run is split from Serve so tests can use in-memory transports.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// handler reports tool failures as error results rather than protocol errors,
// so the calling model sees the message.
func (s *MCPServer) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.log.DebugContext(ctx, "tool call", "tool", name)

		result, err := s.tools.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			s.log.DebugContext(ctx, "tool call rejected", "tool", name, "error", err)

			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
