// ABOUTME: MCP resource implementations for swim times.
// ABOUTME: Provides swim://bests, swim://recent, and swim://summary for the session user.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/swim/internal/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentLimit = 10

func (s *Server) registerResources() {
	// swim://bests - Personal best per event, LC and SC kept apart
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://bests",
		Name:        "Personal Bests",
		Description: "Fastest time for each event and course for the logged-in swimmer",
		MIMEType:    "application/json",
	}, s.handleBestsResource)

	// swim://recent - Last 10 swims by date
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://recent",
		Name:        "Recent Swims",
		Description: "Last 10 recorded swims, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// swim://summary - Counts, years and per-event trend
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://summary",
		Name:        "Swim Summary",
		Description: "Entry counts, years swum and the trend of every event",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
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

// Resource handlers

func (s *Server) handleBestsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	store, u, err := s.openStore("")
	if err != nil {
		return nil, err
	}

	bests := store.Bests(records.BestFilter{SplitCourse: true})
	bests = records.SortEntries(bests, records.SortEvent, true)

	return jsonResource("swim://bests", map[string]any{
		"user":  u.Name,
		"count": len(bests),
		"bests": viewsOf(bests),
	})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	store, u, err := s.openStore("")
	if err != nil {
		return nil, err
	}

	recent := records.SortEntries(store.Entries(), records.SortDate, false)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return jsonResource("swim://recent", map[string]any{
		"user":    u.Name,
		"entries": viewsOf(recent),
	})
}

type eventSummary struct {
	Event        string `json:"event"`
	Swims        int    `json:"swims"`
	PersonalBest string `json:"personal_best"`
	Trend        string `json:"trend"`
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	store, u, err := s.openStore("")
	if err != nil {
		return nil, err
	}

	entries := store.Entries()
	bests := records.SortEntries(store.Bests(records.BestFilter{SplitCourse: true}), records.SortEvent, true)

	events := make([]eventSummary, 0, len(bests))
	for _, pb := range bests {
		history := records.FilterEvent(entries, pb.Key(), records.AllYears)
		events = append(events, eventSummary{
			Event:        pb.Key().String(),
			Swims:        len(history),
			PersonalBest: pb.Time,
			Trend:        records.AnalyzeTrend(history).String(),
		})
	}

	return jsonResource("swim://summary", map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"user":         u.Name,
		"total_swims":  len(entries),
		"years":        records.Years(entries),
		"events":       events,
	})
}
