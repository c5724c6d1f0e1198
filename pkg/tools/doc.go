// Package tools exposes multiquery over MCP (Model Context Protocol).
//
// It is organized into sub-packages:
//   - [github.com/germanamz/multiquery/pkg/tools/toolbox]: Tool type and ToolBox registry
//   - [github.com/germanamz/multiquery/pkg/tools/querytools]: query_model and check_keys tools backed by a query.Client
//   - [github.com/germanamz/multiquery/pkg/tools/mcpserver]: stdio MCP server built on the official MCP Go SDK
package tools
