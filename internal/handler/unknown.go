package handler

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fitcoach/internal/chat"
	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/profile"
	"fitcoach/internal/template"
)

// NutritionAdviceHandler answers diet questions: protein questions get the
// table entry, everything else goes to the completion service with the
// generic template as the offline fallback.
type NutritionAdviceHandler struct {
	llm       llm.Client
	templates *template.Manager
	profile   profile.Profile
}

func NewNutritionAdviceHandler(client llm.Client, tm *template.Manager, prof profile.Profile) *NutritionAdviceHandler {
	return &NutritionAdviceHandler{llm: client, templates: tm, profile: prof}
}

func (h *NutritionAdviceHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryNutritionAdvice
}

func (h *NutritionAdviceHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	if containsAny(strings.ToLower(query), "protein", "đạm") {
		grams := 100
		if h.profile.WeightKg > 0 {
			grams = int(h.profile.WeightKg * 1.6)
		}
		return renderTemplate(h.templates, det.Category, "nutrition_protein",
			map[string]any{"grams": grams}), nil
	}
	if h.llm != nil {
		answer, err := h.llm.Complete(ctx,
			"You are a pragmatic dietitian. Answer briefly and concretely. "+h.profile.PromptLine(),
			query)
		if err == nil && strings.TrimSpace(answer) != "" {
			return &Response{Content: answer, Intent: det.Category}, nil
		}
	}
	return renderTemplate(h.templates, det.Category, "nutrition_generic", nil), nil
}

// UnknownHandler is the last resort: hand the raw query to the completion
// service with whatever profile and history we have. If that call fails too,
// a static capability summary goes out instead of an error.
type UnknownHandler struct {
	llm     llm.Client
	profile profile.Profile
	logger  *zap.Logger
}

func NewUnknownHandler(client llm.Client, prof profile.Profile, logger *zap.Logger) *UnknownHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnknownHandler{llm: client, profile: prof, logger: logger}
}

func (h *UnknownHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return true
}

func (h *UnknownHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	if h.llm != nil {
		system := "You are a friendly diet and fitness assistant. Be brief and practical."
		if line := h.profile.PromptLine(); line != "" {
			system += " The user: " + line + "."
		}
		msgs := []llm.Message{{Role: llm.RoleSystem, Content: system}}
		if cctx != nil {
			if history := cctx.RecentAsText(6); history != "" {
				msgs = append(msgs, llm.Message{Role: llm.RoleSystem,
					Content: "Recent conversation:\n" + history})
			}
		}
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: query})

		answer, err := h.llm.Chat(ctx, msgs, llm.Params{Temperature: 0.7, MaxTokens: 400})
		if err == nil && strings.TrimSpace(answer) != "" {
			return &Response{Content: answer, Intent: intent.CategoryUnknown}, nil
		}
		h.logger.Warn("fallback completion failed", zap.Error(err))
	}
	return &Response{Content: capabilitySummary, Intent: intent.CategoryUnknown}, nil
}

const capabilitySummary = "I can help you with:\n" +
	"- workout plans (\"plan me a workout for today\")\n" +
	"- meal plans (\"create a 3-day vegetarian meal plan\")\n" +
	"- your food diary (\"I ate pho, 550 calories\")\n" +
	"- logging workouts (\"I ran for 30 minutes\")\n" +
	"- your calendar (\"schedule yoga at 7am tomorrow\")\n" +
	"- progress (\"how am I doing today?\")"
