// Package handler routes a classified user query to the code that can
// answer it. One handler per intent category, kept behind a small registry
// so the orchestrator stays a thin dispatcher.
package handler

import (
	"context"

	"fitcoach/internal/chat"
	"fitcoach/internal/intent"
	"fitcoach/internal/plan"
	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// Response is what a handler hands back to the caller. Content is always
// user-facing text; the typed fields are optional extras the UI layer can
// render richer than plain text.
type Response struct {
	Content       string                  `json:"content"`
	Intent        intent.Category         `json:"intent,omitempty"`
	ToolResults   []*tools.Result         `json:"toolResults,omitempty"`
	NutritionData *store.NutritionSummary `json:"nutritionData,omitempty"`
	ExercisePlan  *plan.Plan              `json:"exercisePlan,omitempty"`
}

// Handler answers queries for one intent category. Handle may return
// (nil, nil) to signal it has nothing to say, letting the caller fall
// through to the next strategy.
type Handler interface {
	CanHandle(det intent.Detected, cctx *chat.Context) bool
	Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error)
}

// Registry maps each category to exactly one handler.
type Registry struct {
	byCategory map[intent.Category]Handler
}

func NewRegistry() *Registry {
	return &Registry{byCategory: map[intent.Category]Handler{}}
}

// Register binds a handler to a category, replacing any previous binding.
func (r *Registry) Register(cat intent.Category, h Handler) {
	r.byCategory[cat] = h
}

// For returns the handler bound to cat, or nil.
func (r *Registry) For(cat intent.Category) Handler {
	return r.byCategory[cat]
}

// Dispatch finds the handler for the detected category and runs it,
// provided the handler agrees it can take the query.
func (r *Registry) Dispatch(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	h := r.For(det.Category)
	if h == nil || !h.CanHandle(det, cctx) {
		return nil, nil
	}
	return h.Handle(ctx, query, det, cctx)
}
