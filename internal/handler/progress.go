package handler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fitcoach/internal/chat"
	"fitcoach/internal/intent"
	"fitcoach/internal/store"
	"fitcoach/internal/template"
)

// ProgressCheckHandler summarizes today's diary: calories in, calories
// burned, workouts done. Both fetches run concurrently and a store failure
// falls back to the empty-diary template.
type ProgressCheckHandler struct {
	store     *store.Client
	templates *template.Manager
}

func NewProgressCheckHandler(st *store.Client, tm *template.Manager) *ProgressCheckHandler {
	return &ProgressCheckHandler{store: st, templates: tm}
}

func (h *ProgressCheckHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryProgressCheck
}

func (h *ProgressCheckHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	var (
		summary  *store.NutritionSummary
		workouts []store.WorkoutEntry
	)
	if h.store != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			summary, _ = h.store.TodayNutrition(gctx, userID(cctx))
			return nil
		})
		g.Go(func() error {
			workouts, _ = h.store.ListWorkouts(gctx, userID(cctx), todayDate())
			return nil
		})
		_ = g.Wait()
	}

	if summary == nil || (summary.EntryCount == 0 && len(workouts) == 0) {
		return renderTemplate(h.templates, det.Category, "progress_empty", nil), nil
	}

	var burned float64
	for _, w := range workouts {
		burned += w.CaloriesBurned
	}
	resp := renderTemplate(h.templates, det.Category, "progress_summary", map[string]any{
		"calories": fmt.Sprintf("%.0f", summary.TotalCalories),
		"burned":   fmt.Sprintf("%.0f", burned),
		"workouts": len(workouts),
	})
	resp.NutritionData = summary
	return resp, nil
}
