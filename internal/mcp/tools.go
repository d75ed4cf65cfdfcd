// ABOUTME: MCP tool implementations for CheckingIn.
// ABOUTME: Screenshot upload, journaling, insights, and listing.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/wellness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// upload_screenshot
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "upload_screenshot",
		Description: "Extract health metrics from a fitness app screenshot and save them for today",
	}, s.handleUploadScreenshot)

	// add_journal_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_journal_entry",
		Description: "Record today's mood (1-5) and journal entry, replacing any earlier entry for today",
	}, s.handleAddJournalEntry)

	// get_wellness_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_wellness_insights",
		Description: "Get today's status, weekly trends, wellness score, and suggestions",
	}, s.handleGetInsights)

	// list_journal_entries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_journal_entries",
		Description: "List this week's journal entries with average mood and streak",
	}, s.handleListJournalEntries)

	// list_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List recent daily physical health metrics",
	}, s.handleListMetrics)
}

// Tool input/output types

type uploadScreenshotInput struct {
	Path     string `json:"path" jsonschema:"Path to the screenshot image file"`
	MimeType string `json:"mime_type,omitempty" jsonschema:"Image MIME type, detected from the file when omitted"`
}

type uploadOutput struct {
	Date      string                   `json:"date"`
	Extracted *models.ExtractedMetrics `json:"extracted"`
	Message   string                   `json:"message"`
}

type addJournalInput struct {
	Mood      int    `json:"mood,omitempty" jsonschema:"Mood from 1 (low) to 5 (great), defaults to 3"`
	Entry     string `json:"entry,omitempty" jsonschema:"Journal text"`
	Gratitude string `json:"gratitude,omitempty" jsonschema:"Something you are grateful for"`
	Goals     string `json:"goals,omitempty" jsonschema:"Goals or notes for the day"`
}

type journalOutput struct {
	Date    string `json:"date"`
	Mood    int    `json:"mood"`
	Message string `json:"message"`
}

type emptyInput struct{}

type listMetricsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 7)"`
}

// Tool handlers

func (s *Server) handleUploadScreenshot(ctx context.Context, req *mcp.CallToolRequest, input uploadScreenshotInput) (*mcp.CallToolResult, uploadOutput, error) {
	image, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, uploadOutput{}, fmt.Errorf("failed to read screenshot: %w", err)
	}

	res, err := s.tracker.UploadScreenshot(ctx, image, input.MimeType)
	if err != nil {
		return nil, uploadOutput{}, fmt.Errorf("failed to process screenshot: %w", err)
	}

	date := models.FormatDate(res.Metric.Date)
	return nil, uploadOutput{
		Date:      date,
		Extracted: res.Extracted,
		Message:   fmt.Sprintf("Saved health metrics for %s", date),
	}, nil
}

func (s *Server) handleAddJournalEntry(ctx context.Context, req *mcp.CallToolRequest, input addJournalInput) (*mcp.CallToolResult, journalOutput, error) {
	entry, err := s.tracker.AddJournalEntry(ctx, wellness.JournalInput{
		Mood:      input.Mood,
		Entry:     input.Entry,
		Gratitude: input.Gratitude,
		Goals:     input.Goals,
	})
	if err != nil {
		return nil, journalOutput{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	date := models.FormatDate(entry.Date)
	return nil, journalOutput{
		Date:    date,
		Mood:    entry.Mood,
		Message: fmt.Sprintf("Saved journal entry for %s (mood %d/5)", date, entry.Mood),
	}, nil
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	snap, err := s.tracker.Insights(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute insights: %w", err)
	}
	logging.Debug("served insights over mcp", "score", snap.WeeklyTrends.OverallWellnessScore)
	return nil, snap, nil
}

func (s *Server) handleListJournalEntries(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	summary, err := s.tracker.JournalSummary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	if len(summary.Entries) == 0 {
		return nil, map[string]interface{}{"message": "No journal entries this week."}, nil
	}

	return nil, summary, nil
}

func (s *Server) handleListMetrics(ctx context.Context, req *mcp.CallToolRequest, input listMetricsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = wellness.WindowLimit
	}

	metrics, err := s.tracker.ListMetrics(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	if len(metrics) == 0 {
		return nil, map[string]interface{}{"message": "No metrics found."}, nil
	}

	return nil, map[string]interface{}{"metrics": metrics}, nil
}
