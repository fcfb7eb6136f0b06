// Package builtin registers the standard capability set: calendar, food
// diary, workout log and meal planning, all backed by the remote record
// store (and, for plan generation, the completion service).
package builtin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// CalendarTools returns the calendar capability set.
func CalendarTools(st *store.Client) []*tools.Tool {
	return []*tools.Tool{
		{
			Name:        "add_calendar_event",
			Description: "Schedule an event in the user's calendar.",
			Category:    tools.CategoryCalendar,
			Parameters: []tools.Parameter{
				{Name: "title", Type: tools.ParamString, Required: true},
				{Name: "date", Type: tools.ParamDate, Required: true, Description: "ISO date, e.g. 2026-03-14"},
				{Name: "time", Type: tools.ParamString, Required: true, Description: "HH:MM"},
				{Name: "category", Type: tools.ParamString, Required: true,
					Enum: []string{"workout", "meal", "reminder", "other"}},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				ev, err := st.AddCalendarEvent(ctx, store.CalendarEvent{
					UserID:   execCtx.UserID,
					Title:    stringArg(args, "title"),
					Date:     stringArg(args, "date"),
					Time:     stringArg(args, "time"),
					Category: stringArg(args, "category"),
				})
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't schedule the event: %v", err)), nil
				}
				return tools.Ok(fmt.Sprintf("Scheduled %q on %s at %s.", ev.Title, ev.Date, ev.Time), ev), nil
			},
		},
		{
			Name:        "list_calendar_events",
			Description: "List the user's scheduled events, optionally for one date.",
			Category:    tools.CategoryCalendar,
			Parameters: []tools.Parameter{
				{Name: "date", Type: tools.ParamDate, Required: false},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				events, err := st.ListCalendarEvents(ctx, execCtx.UserID, stringArg(args, "date"))
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't fetch your calendar: %v", err)), nil
				}
				if len(events) == 0 {
					return tools.Ok("Nothing scheduled.", events), nil
				}
				var b strings.Builder
				b.WriteString("Your schedule:\n")
				for _, ev := range events {
					fmt.Fprintf(&b, "- %s at %s: %s\n", ev.Date, ev.Time, ev.Title)
				}
				return tools.Ok(b.String(), events), nil
			},
		},
		{
			Name:        "remove_calendar_event",
			Description: "Delete a calendar event by its identifier.",
			Category:    tools.CategoryCalendar,
			Parameters: []tools.Parameter{
				{Name: "event_id", Type: tools.ParamString, Required: true},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				id := stringArg(args, "event_id")
				if err := st.DeleteCalendarEvent(ctx, execCtx.UserID, id); err != nil {
					return tools.Failure(fmt.Sprintf("couldn't remove the event: %v", err)), nil
				}
				return tools.Ok("Event removed.", nil), nil
			},
		},
	}
}

func stringArg(args map[string]any, name string) string {
	if v, ok := args[name]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func numberArg(args map[string]any, name string) (float64, bool) {
	switch v := args[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}
