package builtin

import (
	"context"
	"fmt"
	"time"

	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// MealTypeForHour maps a clock hour onto the diary meal slot used when the
// caller doesn't name one: 05-11 breakfast, 11-15 lunch, 18-22 dinner,
// anything else snack.
func MealTypeForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 11:
		return "breakfast"
	case hour >= 11 && hour < 15:
		return "lunch"
	case hour >= 18 && hour < 22:
		return "dinner"
	default:
		return "snack"
	}
}

// FoodTools returns the food diary capability set.
func FoodTools(st *store.Client) []*tools.Tool {
	return foodToolsAt(st, time.Now)
}

// foodToolsAt allows tests to pin the clock the meal-type fallback reads.
func foodToolsAt(st *store.Client, now func() time.Time) []*tools.Tool {
	return []*tools.Tool{
		{
			Name:        "add_food_entry",
			Description: "Log a food item in the user's diary.",
			Category:    tools.CategoryFood,
			Parameters: []tools.Parameter{
				{Name: "name", Type: tools.ParamString, Required: true},
				{Name: "calories", Type: tools.ParamNumber, Required: true},
				{Name: "meal_type", Type: tools.ParamString, Required: false,
					Enum: []string{"breakfast", "lunch", "dinner", "snack"}},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				mealType := stringArg(args, "meal_type")
				if mealType == "" {
					mealType = MealTypeForHour(now().Hour())
				}
				calories, _ := numberArg(args, "calories")
				entry, err := st.AddFoodEntry(ctx, store.FoodEntry{
					UserID:   execCtx.UserID,
					Name:     stringArg(args, "name"),
					MealType: mealType,
					Calories: calories,
					Date:     now().Format("2006-01-02"),
				})
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't log the food entry: %v", err)), nil
				}
				return tools.Ok(fmt.Sprintf("Logged %s (%.0f kcal) as %s.",
					entry.Name, entry.Calories, entry.MealType), entry), nil
			},
		},
		{
			Name:        "get_today_nutrition",
			Description: "Fetch today's aggregated nutrition totals.",
			Category:    tools.CategoryFood,
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				summary, err := st.TodayNutrition(ctx, execCtx.UserID)
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't fetch today's totals: %v", err)), nil
				}
				msg := fmt.Sprintf("Today: %.0f kcal across %d entries (%.0fg protein, %.0fg carbs, %.0fg fat).",
					summary.TotalCalories, summary.EntryCount,
					summary.TotalProtein, summary.TotalCarbs, summary.TotalFat)
				return tools.Ok(msg, summary), nil
			},
		},
	}
}
