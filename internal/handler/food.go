package handler

import (
	"context"
	"fmt"
	"strings"

	"fitcoach/internal/chat"
	"fitcoach/internal/extract"
	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/tools"
)

// FoodAnalysisHandler estimates calories for a described (or photographed)
// meal through the completion service and offers to log the result. The
// image itself is analyzed upstream; by the time a query reaches the engine
// it carries a text description.
type FoodAnalysisHandler struct {
	llm      llm.Client
	registry *tools.Registry
}

func NewFoodAnalysisHandler(client llm.Client, registry *tools.Registry) *FoodAnalysisHandler {
	return &FoodAnalysisHandler{llm: client, registry: registry}
}

func (h *FoodAnalysisHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryFoodAnalysis
}

func (h *FoodAnalysisHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	// A calorie figure in the text means the user already knows the number;
	// log it straight away.
	if kcal := extract.Calories(query); kcal > 0 {
		res := h.registry.Execute(ctx, "add_food_entry", map[string]any{
			"name":     orDefault(extract.NamePhrase(query), "Food"),
			"calories": float64(kcal),
		}, execContext(cctx))
		return &Response{
			Content:     res.Message,
			Intent:      det.Category,
			ToolResults: []*tools.Result{res},
		}, nil
	}

	if h.llm == nil {
		return &Response{Content: foodAnalysisFallback, Intent: det.Category}, nil
	}
	answer, err := h.llm.Complete(ctx,
		"You are a nutritionist. Estimate calories and macros for the described food in 2-3 short sentences.",
		query)
	if err != nil || strings.TrimSpace(answer) == "" {
		return &Response{Content: foodAnalysisFallback, Intent: det.Category}, nil
	}
	return &Response{
		Content: fmt.Sprintf("%s\n\nSay \"log it\" with a calorie number and I'll add it to your diary.", answer),
		Intent:  det.Category,
	}, nil
}

const foodAnalysisFallback = "I couldn't analyze that right now. Tell me the food and " +
	"an approximate calorie count and I'll log it for you."
