package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleScanEndpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SpecPath = request.GetString("spec_path", "")
	cfg.LogsPath = request.GetString("logs_path", "")
	if cfg.SpecPath == "" {
		return mcp.NewToolResultError("spec_path is required"), nil
	}
	if cfg.LogsPath == "" {
		return mcp.NewToolResultError("logs_path is required"), nil
	}
	if s := request.GetString("service", ""); s != "" {
		cfg.ServiceName = s
	}
	if w := request.GetInt("window", 0); w > 0 {
		cfg.WindowDays = w
	}

	// Stdout carries the protocol, so the scan must not print progress.
	results, record, err := core.GetScanResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	core.SaveScanResults(record, results, h.mgr)

	enriched := schema.EnrichResults(results)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareScans(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scan1ID := int64(request.GetInt("scan1_id", 0))
	scan2ID := int64(request.GetInt("scan2_id", 0))
	if scan1ID <= 0 || scan2ID <= 0 {
		return mcp.NewToolResultError("scan1_id and scan2_id are required"), nil
	}

	comparison, err := core.GetCompareResults(h.mgr, scan1ID, scan2ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(comparison, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrends(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ServiceName = request.GetString("service", "")
	if cfg.ServiceName == "" {
		return mcp.NewToolResultError("service is required"), nil
	}
	if d := request.GetInt("days", 0); d > 0 {
		cfg.TrendDays = d
	} else if cfg.TrendDays == 0 {
		cfg.TrendDays = contract.DefaultTrendDays
	}

	trend, _, err := core.GetTrendResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(trend, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCostAnalysis(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ServiceName = request.GetString("service", "")
	if cfg.ServiceName == "" {
		return mcp.NewToolResultError("service is required"), nil
	}

	savings, err := core.GetCostResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cost analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(savings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
