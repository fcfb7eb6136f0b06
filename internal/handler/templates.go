package handler

import (
	"context"
	"strings"

	"fitcoach/internal/chat"
	"fitcoach/internal/intent"
	"fitcoach/internal/profile"
	"fitcoach/internal/template"
)

// GeneralHealthHandler answers hydration, sleep and meal-timing questions
// from canned templates, no external calls.
type GeneralHealthHandler struct {
	templates *template.Manager
}

func NewGeneralHealthHandler(tm *template.Manager) *GeneralHealthHandler {
	return &GeneralHealthHandler{templates: tm}
}

func (h *GeneralHealthHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryGeneralHealth
}

func (h *GeneralHealthHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	lower := strings.ToLower(query)
	id := "health_generic"
	data := map[string]any{}
	switch {
	case containsAny(lower, "water", "hydrat", "drink", "nước"):
		id, data = "health_water", map[string]any{"glasses": 8}
	case containsAny(lower, "sleep", "rest", "ngủ"):
		id, data = "health_sleep", map[string]any{"hours": 8}
	case containsAny(lower, "when", "timing", "before", "after"):
		id, data = "health_timing", map[string]any{"window": 2}
	}
	return renderTemplate(h.templates, det.Category, id, data), nil
}

// MotivationHandler picks an encouragement template keyed off the mood the
// query expresses.
type MotivationHandler struct {
	templates *template.Manager
	profile   profile.Profile
}

func NewMotivationHandler(tm *template.Manager, prof profile.Profile) *MotivationHandler {
	return &MotivationHandler{templates: tm, profile: prof}
}

func (h *MotivationHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryMotivation
}

func (h *MotivationHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	lower := strings.ToLower(query)
	id := "motivation_generic"
	data := map[string]any{}
	switch {
	case containsAny(lower, "tired", "exhausted", "drained", "mệt"):
		id, data = "motivation_tired", map[string]any{"name": orDefault(h.profile.Name, "friend")}
	case containsAny(lower, "missed", "skipped", "failed", "gave up", "cheat"):
		id, data = "motivation_setback", map[string]any{"streak": "your"}
	case containsAny(lower, "did it", "finished", "hit my", "proud", "lost"):
		id = "motivation_celebrate"
	}
	return renderTemplate(h.templates, det.Category, id, data), nil
}

func renderTemplate(tm *template.Manager, cat intent.Category, id string, data map[string]any) *Response {
	tpl, ok := tm.Pick(cat, func(t template.Template) bool { return t.ID == id })
	if !ok {
		tpl, ok = tm.Random(cat)
	}
	if !ok {
		return &Response{Content: "I'm not sure how to answer that one yet.", Intent: cat}
	}
	return &Response{Content: template.Render(tpl, data), Intent: cat}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
