package builtin

import (
	"context"
	"fmt"
	"strings"

	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// burnRates maps exercise-name keywords to kcal burned per minute, used
// when the caller doesn't supply a calorie figure.
var burnRates = []struct {
	keywords []string
	perMin   float64
}{
	{[]string{"run", "hiit", "sprint"}, 10},
	{[]string{"walk", "yoga", "stretch"}, 4},
	{[]string{"gym", "weight", "strength"}, 7},
	{[]string{"swim", "cycle", "bike"}, 8},
}

const defaultBurnPerMin = 6

// BurnRateFor returns the per-minute burn rate for an exercise name.
func BurnRateFor(name string) float64 {
	lower := strings.ToLower(name)
	for _, rate := range burnRates {
		for _, kw := range rate.keywords {
			if strings.Contains(lower, kw) {
				return rate.perMin
			}
		}
	}
	return defaultBurnPerMin
}

// WorkoutTools returns the workout-log capability set.
func WorkoutTools(st *store.Client) []*tools.Tool {
	return []*tools.Tool{
		{
			Name:        "log_workout",
			Description: "Record a completed workout; calories are estimated from the exercise type when omitted.",
			Category:    tools.CategoryWorkout,
			Parameters: []tools.Parameter{
				{Name: "name", Type: tools.ParamString, Required: true},
				{Name: "duration_minutes", Type: tools.ParamNumber, Required: true},
				{Name: "calories_burned", Type: tools.ParamNumber, Required: false},
			},
			Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
				name := stringArg(args, "name")
				duration, _ := numberArg(args, "duration_minutes")
				burned, ok := numberArg(args, "calories_burned")
				if !ok || burned <= 0 {
					burned = BurnRateFor(name) * duration
				}
				entry, err := st.AddWorkoutEntry(ctx, store.WorkoutEntry{
					UserID:          execCtx.UserID,
					Name:            name,
					DurationMinutes: int(duration),
					CaloriesBurned:  burned,
					Date:            todayISO(),
				})
				if err != nil {
					return tools.Failure(fmt.Sprintf("couldn't log the workout: %v", err)), nil
				}
				return tools.Ok(fmt.Sprintf("Logged %s, %d minutes, about %.0f kcal burned.",
					entry.Name, entry.DurationMinutes, entry.CaloriesBurned), entry), nil
			},
		},
	}
}
