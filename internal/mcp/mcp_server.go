// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Graveyard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"API Graveyard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_endpoints ---
	s.AddTool(mcp.NewTool("scan_endpoints",
		mcp.WithDescription("Scan an OpenAPI spec against access logs to find unused endpoint candidates."),
		mcp.WithString("spec_path", mcp.Description("Path to the OpenAPI spec file (YAML or JSON)."), mcp.Required()),
		mcp.WithString("logs_path", mcp.Description("Path to the NDJSON access log file, plain or gzip-compressed."), mcp.Required()),
		mcp.WithString("service", mcp.Description("Service name recorded with the scan.")),
		mcp.WithNumber("window", mcp.Description("Only count log entries from the last N days.")),
	), h.handleScanEndpoints)

	// --- 2. Tool: compare_scans ---
	s.AddTool(mcp.NewTool("compare_scans",
		mcp.WithDescription("Compare two historical scans to see which endpoints appeared, disappeared, or changed usage."),
		mcp.WithNumber("scan1_id", mcp.Description("ID of the older scan."), mcp.Required()),
		mcp.WithNumber("scan2_id", mcp.Description("ID of the newer scan."), mcp.Required()),
	), h.handleCompareScans)

	// --- 3. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Analyze how a service's unused endpoint count moved over recent scans."),
		mcp.WithString("service", mcp.Description("Service name whose scan history to analyze."), mcp.Required()),
		mcp.WithNumber("days", mcp.Description("Lookback window in days. Defaults to 30.")),
	), h.handleGetTrends)

	// --- 4. Tool: get_cost_analysis ---
	s.AddTool(mcp.NewTool("get_cost_analysis",
		mcp.WithDescription("Estimate the monthly and annual savings from removing a service's unused endpoints."),
		mcp.WithString("service", mcp.Description("Service name whose latest scan to price."), mcp.Required()),
	), h.handleGetCostAnalysis)

	return s
}

// StartMCPServer starts the Graveyard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
