package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitcoach/internal/chat"
	"fitcoach/internal/extract"
	"fitcoach/internal/intent"
	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// CalendarDeletionHandler removes an event named in free text. The delete
// tool works on event IDs, so the handler first lists the day's events and
// matches the spoken title against them.
type CalendarDeletionHandler struct {
	registry *tools.Registry
	store    *store.Client
	now      func() time.Time
}

func NewCalendarDeletionHandler(registry *tools.Registry, st *store.Client) *CalendarDeletionHandler {
	return &CalendarDeletionHandler{registry: registry, store: st, now: time.Now}
}

func (h *CalendarDeletionHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryCalendarDeletion
}

func (h *CalendarDeletionHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	res := removeEventByTitle(ctx, h.store, h.registry, execContext(cctx),
		extract.NamePhrase(query), extract.Date(query, h.now()))
	return &Response{
		Content:     res.Message,
		Intent:      det.Category,
		ToolResults: []*tools.Result{res},
	}, nil
}

// removeEventByTitle resolves a title (and optional date) to an event ID
// and deletes it through the registry, so validation and panic recovery
// still apply.
func removeEventByTitle(ctx context.Context, st *store.Client, reg *tools.Registry, execCtx tools.ExecContext, title, date string) *tools.Result {
	if title == "" {
		return tools.Failure("Tell me which event to remove, for example \"delete the yoga class event\".")
	}
	events, err := st.ListCalendarEvents(ctx, execCtx.UserID, date)
	if err != nil {
		return tools.Failure(fmt.Sprintf("couldn't fetch your calendar: %v", err))
	}
	lower := strings.ToLower(title)
	for _, ev := range events {
		evTitle := strings.ToLower(ev.Title)
		if strings.Contains(evTitle, lower) || strings.Contains(lower, evTitle) {
			return reg.Execute(ctx, "remove_calendar_event",
				map[string]any{"event_id": ev.ID}, execCtx)
		}
	}
	return tools.Failure(fmt.Sprintf("I couldn't find an event matching %q.", title))
}
