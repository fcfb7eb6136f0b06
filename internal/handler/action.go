package handler

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitcoach/internal/chat"
	"fitcoach/internal/extract"
	"fitcoach/internal/intent"
	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// actionPattern pairs a phrasing regex with the tool it implies and an
// argument builder run over the raw query. A pattern may instead carry a
// custom run func when the tool call needs a lookup first.
type actionPattern struct {
	re    *regexp.Regexp
	tool  string
	build func(query string, now time.Time) map[string]any
	run   func(ctx context.Context, h *ActionHandler, query string, execCtx tools.ExecContext) *tools.Result
}

// ActionHandler short-circuits obviously imperative queries straight to a
// tool, skipping the classifier. When no phrasing matches it returns
// (nil, nil) so the caller can fall through to classification.
type ActionHandler struct {
	registry *tools.Registry
	store    *store.Client
	patterns []actionPattern
	now      func() time.Time
	logger   *zap.Logger
}

func NewActionHandler(registry *tools.Registry, st *store.Client, logger *zap.Logger) *ActionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionHandler{
		registry: registry,
		store:    st,
		patterns: defaultActionPatterns(),
		now:      time.Now,
		logger:   logger,
	}
}

func defaultActionPatterns() []actionPattern {
	return []actionPattern{
		{
			re:   regexp.MustCompile(`(?i)\b(?:schedule|book|add)\b.*\b(?:at|vào)\b|\bđặt lịch\b`),
			tool: "add_calendar_event",
			build: func(q string, now time.Time) map[string]any {
				title := extract.NamePhrase(q)
				if title == "" {
					title = "Workout"
				}
				return map[string]any{
					"title":    title,
					"date":     extract.Date(q, now),
					"time":     extract.ClockTime(q),
					"category": guessEventCategory(q),
				}
			},
		},
		{
			re:   regexp.MustCompile(`(?i)(?:what'?s on|view|show|list).*(?:calendar|schedule|lịch)`),
			tool: "list_calendar_events",
			build: func(q string, now time.Time) map[string]any {
				return map[string]any{"date": extract.Date(q, now)}
			},
		},
		{
			re:   regexp.MustCompile(`(?i)\b(?:delete|remove|cancel|xóa)\b.*\b(?:event|appointment|lịch)\b`),
			tool: "remove_calendar_event",
			run: func(ctx context.Context, h *ActionHandler, q string, execCtx tools.ExecContext) *tools.Result {
				return removeEventByTitle(ctx, h.store, h.registry, execCtx,
					extract.NamePhrase(q), extract.Date(q, h.now()))
			},
		},
		{
			re:   regexp.MustCompile(`(?i)\b(?:ate|had|eat)\b.*\d+\s*(?:k?cal|calo)`),
			tool: "add_food_entry",
			build: func(q string, now time.Time) map[string]any {
				return map[string]any{
					"name":     orDefault(extract.NamePhrase(q), "Food"),
					"calories": float64(extract.Calories(q)),
				}
			},
		},
		{
			re:   regexp.MustCompile(`(?i)how (?:many|much) calories|nutrition today|today'?s nutrition|hôm nay ăn`),
			tool: "get_today_nutrition",
			build: func(q string, now time.Time) map[string]any {
				return map[string]any{}
			},
		},
		{
			re:   regexp.MustCompile(`(?i)\b(?:ran|jogged|worked out|did|finished)\b.*\d+\s*(?:min|phút)`),
			tool: "log_workout",
			build: func(q string, now time.Time) map[string]any {
				args := map[string]any{
					"name":             orDefault(extract.NamePhrase(q), "Workout"),
					"duration_minutes": float64(extract.DurationMinutes(q)),
				}
				if kcal := extract.Calories(q); kcal > 0 {
					args["calories_burned"] = float64(kcal)
				}
				return args
			},
		},
	}
}

func (h *ActionHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryAction
}

func (h *ActionHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	for _, p := range h.patterns {
		if !p.re.MatchString(query) {
			continue
		}
		h.logger.Debug("action pattern matched", zap.String("tool", p.tool))
		var res *tools.Result
		if p.run != nil {
			res = p.run(ctx, h, query, execContext(cctx))
		} else {
			res = h.registry.Execute(ctx, p.tool, p.build(query, h.now()), execContext(cctx))
		}
		return &Response{
			Content:     res.Message,
			Intent:      intent.CategoryAction,
			ToolResults: []*tools.Result{res},
		}, nil
	}
	return nil, nil
}

func guessEventCategory(q string) string {
	lower := strings.ToLower(q)
	switch {
	case strings.Contains(lower, "gym") || strings.Contains(lower, "workout") ||
		strings.Contains(lower, "run") || strings.Contains(lower, "yoga"):
		return "workout"
	case strings.Contains(lower, "meal") || strings.Contains(lower, "lunch") ||
		strings.Contains(lower, "dinner") || strings.Contains(lower, "breakfast"):
		return "meal"
	case strings.Contains(lower, "remind"):
		return "reminder"
	default:
		return "other"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func execContext(cctx *chat.Context) tools.ExecContext {
	if cctx == nil {
		return tools.ExecContext{}
	}
	return tools.ExecContext{UserID: cctx.UserID, SessionID: cctx.SessionID}
}
