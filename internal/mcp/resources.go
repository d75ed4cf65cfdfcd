// ABOUTME: MCP resource implementations for CheckingIn.
// ABOUTME: Provides checkingin://insights and checkingin://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	insightsURI = "checkingin://insights"
	todayURI    = "checkingin://today"
)

func (s *Server) registerResources() {
	// checkingin://insights - full weekly snapshot
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         insightsURI,
		Name:        "Wellness Insights",
		Description: "Weekly trends, wellness score, and suggestions",
		MIMEType:    "application/json",
	}, s.handleInsightsResource)

	// checkingin://today - what has been logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Check-in",
		Description: "Today's physical metrics and journal entry",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleInsightsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.tracker.Insights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute insights: %w", err)
	}
	return jsonResource(insightsURI, snap)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.tracker.Insights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute insights: %w", err)
	}

	today := s.tracker.Today()
	result := map[string]interface{}{
		"date":   models.FormatDate(today),
		"status": snap.TodayStatus,
	}

	metric, err := s.tracker.PhysicalMetric(ctx, today)
	switch {
	case err == nil:
		result["physical"] = metric
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load today's metrics: %w", err)
	}

	entry, err := s.tracker.JournalEntry(ctx, today)
	switch {
	case err == nil:
		result["journal"] = entry
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to load today's journal: %w", err)
	}

	return jsonResource(todayURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
