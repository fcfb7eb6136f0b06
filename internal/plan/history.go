package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitcoach/internal/store"
)

// HistoryTTL bounds how long fetched historical context is reused.
const HistoryTTL = 5 * time.Minute

// HistoryProvider enriches generation prompts with the user's recent diary
// activity. Fetch errors degrade to "no additional context" instead of
// failing the request.
type HistoryProvider struct {
	store  *store.Client
	cache  *TTLCache[string]
	logger *zap.Logger
}

// NewHistoryProvider builds a provider over the record store.
func NewHistoryProvider(st *store.Client, logger *zap.Logger) *HistoryProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryProvider{
		store:  st,
		cache:  NewTTLCache[string](HistoryTTL),
		logger: logger,
	}
}

// Context returns a prompt-ready description of the user's recent meals,
// or the empty string when nothing is available.
func (h *HistoryProvider) Context(ctx context.Context, userID string) string {
	if cached, ok := h.cache.Get(userID); ok {
		return cached
	}
	if h.store == nil {
		return ""
	}

	meals, err := h.store.RecentMeals(ctx, userID, 10)
	if err != nil {
		h.logger.Debug("historical context unavailable",
			zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	text := formatMeals(meals)
	h.cache.Set(userID, text)
	return text
}

func formatMeals(meals []store.FoodEntry) string {
	if len(meals) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent meals:\n")
	for _, m := range meals {
		fmt.Fprintf(&b, "- %s (%s, %.0f kcal)\n", m.Name, m.MealType, m.Calories)
	}
	return b.String()
}
