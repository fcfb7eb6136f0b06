package handler

import (
	"context"
	"regexp"
	"strings"

	"fitcoach/internal/chat"
	"fitcoach/internal/extract"
	"fitcoach/internal/intent"
	"fitcoach/internal/tools"
)

var (
	dayOfWeekRe = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	mealSlotRe  = regexp.MustCompile(`(?i)\b(breakfast|lunch|dinner)\b`)
	daysCountRe = regexp.MustCompile(`(?i)(\d+)[\s-]*day`)
)

// MealPlanHandler covers both generating a fresh plan and swapping one meal
// in the stored plan; the intent category decides which.
type MealPlanHandler struct {
	registry *tools.Registry
}

func NewMealPlanHandler(registry *tools.Registry) *MealPlanHandler {
	return &MealPlanHandler{registry: registry}
}

func (h *MealPlanHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryMealPlanRequest ||
		det.Category == intent.CategoryMealPlanModification
}

func (h *MealPlanHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	var res *tools.Result
	if det.Category == intent.CategoryMealPlanModification {
		res = h.modify(ctx, query, execContext(cctx))
	} else {
		res = h.generate(ctx, query, execContext(cctx))
	}
	return &Response{
		Content:     res.Message,
		Intent:      det.Category,
		ToolResults: []*tools.Result{res},
	}, nil
}

func (h *MealPlanHandler) generate(ctx context.Context, query string, execCtx tools.ExecContext) *tools.Result {
	args := map[string]any{}
	if m := daysCountRe.FindStringSubmatch(query); m != nil {
		args["days"] = float64(extract.FirstInt(m[1], 3))
	}
	if prefs := extract.DietPreferences(query); len(prefs) > 0 {
		args["preferences"] = strings.Join(prefs, ", ")
	}
	if allergies := extract.Allergies(query); len(allergies) > 0 {
		args["allergies"] = strings.Join(allergies, ", ")
	}
	return h.registry.Execute(ctx, "generate_meal_plan", args, execCtx)
}

func (h *MealPlanHandler) modify(ctx context.Context, query string, execCtx tools.ExecContext) *tools.Result {
	day := "monday"
	if m := dayOfWeekRe.FindStringSubmatch(query); m != nil {
		day = strings.ToLower(m[1])
	}
	slot := "lunch"
	if m := mealSlotRe.FindStringSubmatch(query); m != nil {
		slot = strings.ToLower(m[1])
	}
	return h.registry.Execute(ctx, "modify_meal_plan", map[string]any{
		"day":     day,
		"slot":    slot,
		"request": query,
	}, execCtx)
}
