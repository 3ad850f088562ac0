// ABOUTME: MCP tool implementations for swim times.
// ABOUTME: Exposes add, list, personal bests, event history, edit, delete and trend.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_time
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_time",
		Description: "Record a swim time for an event (distance, stroke, course)",
	}, s.handleAddTime)

	// list_times
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_times",
		Description: "List recorded swim times, optionally filtered by event and year and sorted",
	}, s.handleListTimes)

	// personal_bests
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "personal_bests",
		Description: "Get the fastest time for each event, optionally for one course and year",
	}, s.handlePersonalBests)

	// event_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "event_history",
		Description: "Get every time for one event with its personal best, trend and years",
	}, s.handleEventHistory)

	// edit_best
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_best",
		Description: "Edit the current personal best of an event; omitted fields are left unchanged",
	}, s.handleEditBest)

	// delete_best
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_best",
		Description: "Delete the current personal best of an event",
	}, s.handleDeleteBest)

	// delete_time
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_time",
		Description: "Delete one recorded time by ID or ID prefix",
	}, s.handleDeleteTime)

	// trend
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "trend",
		Description: "Report whether an event's times are improving, slowing down or stable",
	}, s.handleTrend)
}

// Tool input/output types

type entryView struct {
	ID        string  `json:"id"`
	Event     string  `json:"event"`
	Course    string  `json:"course"`
	Stroke    string  `json:"stroke"`
	Distance  int     `json:"distance"`
	Time      string  `json:"time"`
	Seconds   float64 `json:"seconds"`
	Date      string  `json:"date"`
	Comments  string  `json:"comments,omitempty"`
	Happiness *int    `json:"happiness,omitempty"`
}

func viewOf(e *models.TimeEntry) entryView {
	return entryView{
		ID:        e.ID.String(),
		Event:     e.EventLabel(),
		Course:    string(e.Course),
		Stroke:    string(e.Stroke),
		Distance:  e.Distance,
		Time:      e.Time,
		Seconds:   e.Seconds(),
		Date:      e.Date,
		Comments:  e.Comments,
		Happiness: e.Happiness,
	}
}

func viewsOf(entries []*models.TimeEntry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, viewOf(e))
	}
	return out
}

type addTimeInput struct {
	User      string `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	Distance  int    `json:"distance" jsonschema:"Event distance in meters or yards"`
	Stroke    string `json:"stroke" jsonschema:"Stroke (free, back, breast, fly, IM); free-form input is normalized"`
	Course    string `json:"course" jsonschema:"Pool course: LC (long course) or SC (short course)"`
	Time      string `json:"time" jsonschema:"Swim time such as 28.32, 1:02.45 or 1.02.45"`
	Date      string `json:"date,omitempty" jsonschema:"Date swum (YYYY-MM-DD); defaults to today"`
	Comments  string `json:"comments,omitempty" jsonschema:"Free-text race notes"`
	Happiness *int   `json:"happiness,omitempty" jsonschema:"How the swim felt from 1 to 10"`
}

type addTimeOutput struct {
	Entry      entryView `json:"entry"`
	IsBest     bool      `json:"is_personal_best"`
	Suggestion string    `json:"suggestion,omitempty"`
	Message    string    `json:"message"`
}

type eventInput struct {
	User     string `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	Distance int    `json:"distance" jsonschema:"Event distance"`
	Stroke   string `json:"stroke" jsonschema:"Stroke name; free-form input is normalized"`
	Course   string `json:"course,omitempty" jsonschema:"LC or SC; omit to match both courses"`
	Year     string `json:"year,omitempty" jsonschema:"Four-digit year to filter by, or all"`
}

type listTimesInput struct {
	User       string `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	Distance   int    `json:"distance,omitempty" jsonschema:"Only this distance"`
	Stroke     string `json:"stroke,omitempty" jsonschema:"Only this stroke"`
	Course     string `json:"course,omitempty" jsonschema:"Only this course (LC or SC)"`
	Year       string `json:"year,omitempty" jsonschema:"Only this year"`
	Sort       string `json:"sort,omitempty" jsonschema:"Sort key: event, date, happiness or time (default date)"`
	Descending bool   `json:"descending,omitempty" jsonschema:"Sort in descending order"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default all)"`
}

type listTimesOutput struct {
	User    string      `json:"user"`
	Count   int         `json:"count"`
	Entries []entryView `json:"entries"`
}

type personalBestsInput struct {
	User   string `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	Course string `json:"course,omitempty" jsonschema:"LC or SC; omit to report each course separately"`
	Year   string `json:"year,omitempty" jsonschema:"Four-digit year to filter by, or all"`
	Sort   string `json:"sort,omitempty" jsonschema:"Sort key: event, date, happiness or time (default event)"`
}

type personalBestsOutput struct {
	User  string      `json:"user"`
	Count int         `json:"count"`
	Bests []entryView `json:"bests"`
}

type eventHistoryOutput struct {
	User         string      `json:"user"`
	Event        string      `json:"event"`
	Entries      []entryView `json:"entries"`
	PersonalBest *entryView  `json:"personal_best,omitempty"`
	Trend        string      `json:"trend"`
	TrendMessage string      `json:"trend_message"`
	Years        []string    `json:"years"`
}

type editBestInput struct {
	User      string  `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	Distance  int     `json:"distance" jsonschema:"Event distance"`
	Stroke    string  `json:"stroke" jsonschema:"Stroke name; free-form input is normalized"`
	Course    string  `json:"course,omitempty" jsonschema:"LC or SC; omit to edit the fastest time across both courses"`
	Time      string  `json:"time,omitempty" jsonschema:"New time"`
	Date      string  `json:"date,omitempty" jsonschema:"New date (YYYY-MM-DD)"`
	Comments  *string `json:"comments,omitempty" jsonschema:"New comments; an empty string clears them"`
	Happiness *int    `json:"happiness,omitempty" jsonschema:"New happiness rating from 1 to 10"`
}

type changeOutput struct {
	Changed bool       `json:"changed"`
	Entry   *entryView `json:"entry,omitempty"`
	Message string     `json:"message"`
}

type deleteTimeInput struct {
	User string `json:"user,omitempty" jsonschema:"Swimmer name; defaults to the logged-in user"`
	ID   string `json:"id" jsonschema:"Entry ID or unique ID prefix"`
}

type trendOutput struct {
	Event   string `json:"event"`
	Trend   string `json:"trend"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// parseOptionalCourse accepts "" as "any course".
func parseOptionalCourse(s string) (models.Course, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return models.ParseCourse(s)
}

func eventKey(distance int, stroke, course string) (models.EventKey, error) {
	if distance <= 0 {
		return models.EventKey{}, fmt.Errorf("distance must be positive")
	}
	if strings.TrimSpace(stroke) == "" {
		return models.EventKey{}, fmt.Errorf("stroke is required")
	}
	c, err := parseOptionalCourse(course)
	if err != nil {
		return models.EventKey{}, err
	}
	return models.NewEventKey(distance, stroke, c), nil
}

// Tool handlers

func (s *Server) handleAddTime(ctx context.Context, req *mcp.CallToolRequest, input addTimeInput) (*mcp.CallToolResult, addTimeOutput, error) {
	course, err := models.ParseCourse(input.Course)
	if err != nil {
		return nil, addTimeOutput{}, err
	}

	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, addTimeOutput{}, err
	}

	e := models.NewTimeEntry(course, input.Stroke, input.Distance, input.Time).WithComments(input.Comments)
	if input.Date != "" {
		e.WithDate(input.Date)
	}
	if input.Happiness != nil {
		e.WithHappiness(*input.Happiness)
	}

	if err := store.Add(e); err != nil {
		return nil, addTimeOutput{}, err
	}
	if err := s.persist(store, u); err != nil {
		return nil, addTimeOutput{}, err
	}

	pb := records.PersonalBest(store.EntriesForEvent(string(e.Stroke), e.Distance, e.Course, records.AllYears))
	return nil, addTimeOutput{
		Entry:      viewOf(e),
		IsBest:     pb == e,
		Suggestion: records.Suggest(e.Comments),
		Message:    fmt.Sprintf("Added %s %s (%s) for %s", e.Key().String(), e.Time, e.Date, u.Name),
	}, nil
}

func (s *Server) handleListTimes(ctx context.Context, req *mcp.CallToolRequest, input listTimesInput) (*mcp.CallToolResult, listTimesOutput, error) {
	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, listTimesOutput{}, err
	}

	course, err := parseOptionalCourse(input.Course)
	if err != nil {
		return nil, listTimesOutput{}, err
	}

	stroke := models.Stroke("")
	if input.Stroke != "" {
		stroke = models.NormalizeStroke(input.Stroke)
	}

	var entries []*models.TimeEntry
	for _, e := range store.Entries() {
		if input.Distance > 0 && e.Distance != input.Distance {
			continue
		}
		if stroke != "" && e.Stroke != stroke {
			continue
		}
		if course != "" && e.Course != course {
			continue
		}
		if input.Year != "" && input.Year != records.AllYears && e.Year() != input.Year {
			continue
		}
		entries = append(entries, e)
	}

	key := records.SortDate
	if input.Sort != "" {
		key, err = records.ParseSortKey(input.Sort)
		if err != nil {
			return nil, listTimesOutput{}, err
		}
	}
	entries = records.SortEntries(entries, key, !input.Descending)

	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}

	return nil, listTimesOutput{
		User:    u.Name,
		Count:   len(entries),
		Entries: viewsOf(entries),
	}, nil
}

func (s *Server) handlePersonalBests(ctx context.Context, req *mcp.CallToolRequest, input personalBestsInput) (*mcp.CallToolResult, personalBestsOutput, error) {
	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, personalBestsOutput{}, err
	}

	course, err := parseOptionalCourse(input.Course)
	if err != nil {
		return nil, personalBestsOutput{}, err
	}

	key := records.SortEvent
	if input.Sort != "" {
		key, err = records.ParseSortKey(input.Sort)
		if err != nil {
			return nil, personalBestsOutput{}, err
		}
	}

	bests := store.Bests(records.BestFilter{Course: course, Year: input.Year, SplitCourse: true})
	bests = records.SortEntries(bests, key, true)

	return nil, personalBestsOutput{
		User:  u.Name,
		Count: len(bests),
		Bests: viewsOf(bests),
	}, nil
}

func (s *Server) handleEventHistory(ctx context.Context, req *mcp.CallToolRequest, input eventInput) (*mcp.CallToolResult, eventHistoryOutput, error) {
	key, err := eventKey(input.Distance, input.Stroke, input.Course)
	if err != nil {
		return nil, eventHistoryOutput{}, err
	}

	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, eventHistoryOutput{}, err
	}

	all := store.EntriesForEvent(string(key.Stroke), key.Distance, key.Course, records.AllYears)
	entries := records.FilterEvent(all, key, input.Year)
	entries = records.SortEntries(entries, records.SortDate, true)
	trend := records.AnalyzeTrend(entries)

	out := eventHistoryOutput{
		User:         u.Name,
		Event:        key.String(),
		Entries:      viewsOf(entries),
		Trend:        trend.String(),
		TrendMessage: trend.Message(),
		Years:        records.Years(all),
	}
	if out.Years == nil {
		out.Years = []string{}
	}
	if pb := records.PersonalBest(entries); pb != nil {
		v := viewOf(pb)
		out.PersonalBest = &v
	}
	return nil, out, nil
}

func (s *Server) handleEditBest(ctx context.Context, req *mcp.CallToolRequest, input editBestInput) (*mcp.CallToolResult, changeOutput, error) {
	key, err := eventKey(input.Distance, input.Stroke, input.Course)
	if err != nil {
		return nil, changeOutput{}, err
	}

	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, changeOutput{}, err
	}

	upd := records.Update{Comments: input.Comments, Happiness: input.Happiness}
	if input.Time != "" {
		upd.Time = &input.Time
	}
	if input.Date != "" {
		upd.Date = &input.Date
	}

	edited, err := store.Edit(key, upd)
	if err != nil {
		return nil, changeOutput{}, err
	}
	if edited == nil {
		return nil, changeOutput{Message: fmt.Sprintf("No times recorded for %s", key.String())}, nil
	}
	changed := store.Dirty()
	if err := s.persist(store, u); err != nil {
		return nil, changeOutput{}, err
	}

	v := viewOf(edited)
	return nil, changeOutput{
		Changed: changed,
		Entry:   &v,
		Message: fmt.Sprintf("Updated %s best %s", key.String(), edited.Time),
	}, nil
}

func (s *Server) handleDeleteBest(ctx context.Context, req *mcp.CallToolRequest, input eventInput) (*mcp.CallToolResult, changeOutput, error) {
	key, err := eventKey(input.Distance, input.Stroke, input.Course)
	if err != nil {
		return nil, changeOutput{}, err
	}

	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, changeOutput{}, err
	}

	removed := store.Delete(key)
	if removed == nil {
		return nil, changeOutput{Message: fmt.Sprintf("No times recorded for %s", key.String())}, nil
	}
	if err := s.persist(store, u); err != nil {
		return nil, changeOutput{}, err
	}

	v := viewOf(removed)
	return nil, changeOutput{
		Changed: true,
		Entry:   &v,
		Message: fmt.Sprintf("Deleted %s best %s (%s)", key.String(), removed.Time, removed.Date),
	}, nil
}

func (s *Server) handleDeleteTime(ctx context.Context, req *mcp.CallToolRequest, input deleteTimeInput) (*mcp.CallToolResult, changeOutput, error) {
	store, u, err := s.openStore(input.User)
	if err != nil {
		return nil, changeOutput{}, err
	}

	removed, err := store.DeleteByID(input.ID)
	if err != nil {
		return nil, changeOutput{}, err
	}
	if err := s.persist(store, u); err != nil {
		return nil, changeOutput{}, err
	}

	v := viewOf(removed)
	return nil, changeOutput{
		Changed: true,
		Entry:   &v,
		Message: fmt.Sprintf("Deleted %s %s (%s)", removed.Key().String(), removed.Time, removed.ShortID()),
	}, nil
}

func (s *Server) handleTrend(ctx context.Context, req *mcp.CallToolRequest, input eventInput) (*mcp.CallToolResult, trendOutput, error) {
	key, err := eventKey(input.Distance, input.Stroke, input.Course)
	if err != nil {
		return nil, trendOutput{}, err
	}

	store, _, err := s.openStore(input.User)
	if err != nil {
		return nil, trendOutput{}, err
	}

	entries := store.EntriesForEvent(string(key.Stroke), key.Distance, key.Course, input.Year)
	trend := records.AnalyzeTrend(entries)
	return nil, trendOutput{
		Event:   key.String(),
		Trend:   trend.String(),
		Message: trend.Message(),
		Count:   len(entries),
	}, nil
}
