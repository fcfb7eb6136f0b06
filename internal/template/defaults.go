package template

import "fitcoach/internal/intent"

// DefaultManager returns the built-in response sets.
func DefaultManager() *Manager {
	m := NewManager()
	for _, tpl := range defaultTemplates {
		m.Add(tpl)
	}
	return m
}

var defaultTemplates = []Template{
	// General health.
	{
		ID:       "health_water",
		Category: intent.CategoryGeneralHealth,
		Text: "Aim for about {glasses} glasses of water a day. Spread them out; " +
			"thirst lags behind what your body actually needs, especially around workouts.",
		Variables: []string{"glasses"},
	},
	{
		ID:       "health_sleep",
		Category: intent.CategoryGeneralHealth,
		Text: "Recovery happens while you rest. Target {hours} hours of sleep and keep " +
			"a consistent schedule; progress stalls fast on chronic short nights.",
		Variables: []string{"hours"},
	},
	{
		ID:       "health_timing",
		Category: intent.CategoryGeneralHealth,
		Text: "Meal timing matters less than totals, but eating within {window} hours " +
			"after training helps recovery.",
		Variables: []string{"window"},
	},
	{
		ID:       "health_generic",
		Category: intent.CategoryGeneralHealth,
		Text: "Small consistent habits beat big occasional efforts. Keep logging your " +
			"meals and workouts and the trends will tell you what to adjust.",
	},

	// Motivation.
	{
		ID:       "motivation_tired",
		Category: intent.CategoryMotivation,
		Text: "Feeling drained is a signal, not a failure. Do a lighter session today, " +
			"{name}. Showing up at 50% still counts.",
		Variables: []string{"name"},
	},
	{
		ID:       "motivation_setback",
		Category: intent.CategoryMotivation,
		Text: "One missed day doesn't undo {streak} days of effort. Get the next meal " +
			"or the next workout right and keep moving.",
		Variables: []string{"streak"},
	},
	{
		ID:       "motivation_celebrate",
		Category: intent.CategoryMotivation,
		Text: "That's real progress, lock it in. Pick one small target for this week " +
			"so the momentum has somewhere to go.",
	},
	{
		ID:       "motivation_generic",
		Category: intent.CategoryMotivation,
		Text: "You don't need to feel motivated to start; starting is what creates the " +
			"motivation. Five minutes, then decide.",
	},

	// Nutrition advice.
	{
		ID:       "nutrition_protein",
		Category: intent.CategoryNutritionAdvice,
		Text: "A practical protein target is {grams} g per day for your weight. Spread " +
			"it across meals rather than loading it into one.",
		Variables: []string{"grams"},
	},
	{
		ID:       "nutrition_generic",
		Category: intent.CategoryNutritionAdvice,
		Text: "Build meals around protein and vegetables first, then add carbs to match " +
			"how active the day is. Your diary totals are the ground truth.",
	},

	// Progress check.
	{
		ID:       "progress_summary",
		Category: intent.CategoryProgressCheck,
		Text: "Today so far: {calories} kcal eaten, {burned} kcal burned across " +
			"{workouts} workout(s). The weekly trend beats any single day, keep the log going.",
		Variables: []string{"calories", "burned", "workouts"},
	},
	{
		ID:       "progress_empty",
		Category: intent.CategoryProgressCheck,
		Text: "No entries logged yet today. Add your meals and workouts and I can show " +
			"you real numbers instead of guesses.",
	},
}
