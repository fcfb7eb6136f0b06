package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fitcoach/internal/llm"
	"fitcoach/internal/plan"
	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

var (
	weekDays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	mealSlots = []string{"breakfast", "lunch", "dinner"}
)

// MealPlanTools returns the meal-planning capability set. Generation goes
// through the completion service; its output is repaired before use and a
// parse failure degrades to a fixed default plan.
func MealPlanTools(st *store.Client, client llm.Client) []*tools.Tool {
	return []*tools.Tool{
		{
			Name:        "generate_meal_plan",
			Description: "Generate a multi-day meal plan honoring dietary preferences and allergies.",
			Category:    tools.CategoryMealPlan,
			Parameters: []tools.Parameter{
				{Name: "days", Type: tools.ParamNumber, Required: false, Description: "1-7, default 3"},
				{Name: "preferences", Type: tools.ParamString, Required: false, Description: "comma-separated"},
				{Name: "allergies", Type: tools.ParamString, Required: false, Description: "comma-separated"},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				days := 3
				if n, ok := numberArg(args, "days"); ok && n >= 1 && n <= 7 {
					days = int(n)
				}
				generated := generatePlan(ctx, client, days,
					stringArg(args, "preferences"), stringArg(args, "allergies"))
				generated.UserID = execCtx.UserID

				saved, err := st.SaveMealPlan(ctx, generated)
				if err != nil {
					// The plan is still useful even if persistence failed.
					return tools.Ok(formatMealPlan(generated)+
						"\n(I couldn't save it to your account, so it may not appear in the app.)", generated), nil
				}
				return tools.Ok(formatMealPlan(*saved), saved), nil
			},
		},
		{
			Name:        "modify_meal_plan",
			Description: "Replace one meal slot in the stored plan.",
			Category:    tools.CategoryMealPlan,
			Parameters: []tools.Parameter{
				{Name: "day", Type: tools.ParamString, Required: true,
					Enum: weekDays},
				{Name: "slot", Type: tools.ParamString, Required: true,
					Enum: mealSlots},
				{Name: "request", Type: tools.ParamString, Required: false, Description: "what the user wants instead"},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				current, err := st.GetMealPlan(ctx, execCtx.UserID)
				if err != nil {
					return tools.Failure("you don't have a stored meal plan yet; ask me to create one first"), nil
				}
				day := stringArg(args, "day")
				slot := stringArg(args, "slot")
				meal := suggestMeal(ctx, client, day, slot, stringArg(args, "request"))

				replaced := false
				for i, m := range current.Days[day] {
					if m.Slot == slot {
						current.Days[day][i] = meal
						replaced = true
						break
					}
				}
				if !replaced {
					if current.Days == nil {
						current.Days = map[string][]store.Meal{}
					}
					current.Days[day] = append(current.Days[day], meal)
				}

				updated, err := st.UpdateMealPlan(ctx, *current)
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't update the plan: %v", err)), nil
				}
				return tools.Ok(fmt.Sprintf("Swapped %s %s to %s (%.0f kcal).",
					day, slot, meal.Name, meal.Calories), updated), nil
			},
		},
	}
}

// generatePlan asks the model for a plan and repairs its output; anything
// unusable degrades to defaultMealPlan.
func generatePlan(ctx context.Context, client llm.Client, days int, prefs, allergies string) store.MealPlan {
	if client == nil {
		return defaultMealPlan(days)
	}
	prompt := fmt.Sprintf(
		"Create a %d-day meal plan. Preferences: %s. Allergies to avoid: %s. "+
			`Reply with JSON only: {"days":{"monday":[{"slot":"breakfast","name":"...","calories":400}]}}`,
		days, orNone(prefs), orNone(allergies))
	raw, err := client.Complete(ctx, "You are a nutrition planner.", prompt)
	if err != nil {
		return defaultMealPlan(days)
	}
	repaired, ok := plan.Repair(raw)
	if !ok {
		return defaultMealPlan(days)
	}
	var out store.MealPlan
	if err := json.Unmarshal([]byte(repaired), &out); err != nil || len(out.Days) == 0 {
		return defaultMealPlan(days)
	}
	return out
}

// suggestMeal asks the model for a single replacement meal.
func suggestMeal(ctx context.Context, client llm.Client, day, slot, request string) store.Meal {
	fallback := store.Meal{Slot: slot, Name: "Grilled chicken salad", Calories: 450}
	if client == nil {
		return fallback
	}
	prompt := fmt.Sprintf(
		`Suggest one %s for %s. User request: %s. Reply with JSON only: {"slot":%q,"name":"...","calories":400}`,
		slot, day, orNone(request), slot)
	raw, err := client.Complete(ctx, "You are a nutrition planner.", prompt)
	if err != nil {
		return fallback
	}
	repaired, ok := plan.Repair(raw)
	if !ok {
		return fallback
	}
	var meal store.Meal
	if err := json.Unmarshal([]byte(repaired), &meal); err != nil || meal.Name == "" {
		return fallback
	}
	meal.Slot = slot
	return meal
}

func defaultMealPlan(days int) store.MealPlan {
	out := store.MealPlan{Days: map[string][]store.Meal{}}
	defaults := []store.Meal{
		{Slot: "breakfast", Name: "Oatmeal with fruit", Calories: 350},
		{Slot: "lunch", Name: "Chicken and rice bowl", Calories: 550},
		{Slot: "dinner", Name: "Salmon with vegetables", Calories: 500},
	}
	for i := 0; i < days && i < len(weekDays); i++ {
		out.Days[weekDays[i]] = append([]store.Meal(nil), defaults...)
	}
	return out
}

func formatMealPlan(p store.MealPlan) string {
	var b strings.Builder
	b.WriteString("Here's your meal plan:\n")
	for _, day := range weekDays {
		meals, ok := p.Days[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", capitalize(day))
		for _, m := range meals {
			fmt.Fprintf(&b, "  - %s: %s (%.0f kcal)\n", m.Slot, m.Name, m.Calories)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
