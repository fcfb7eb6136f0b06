// Package intent classifies free-form user text into a closed set of
// request categories using keyword scoring over a static category corpus.
package intent

// Category identifies one of the request types the engine understands.
type Category string

const (
	CategoryWorkoutPlan          Category = "workout_plan"
	CategoryNutritionAdvice      Category = "nutrition_advice"
	CategoryMealPlanRequest      Category = "meal_plan_request"
	CategoryMealPlanModification Category = "meal_plan_modification"
	CategoryExerciseModification Category = "exercise_modification"
	CategoryCalendarDeletion     Category = "calendar_deletion"
	CategoryGeneralHealth        Category = "general_health"
	CategoryMotivation           Category = "motivation"
	CategoryProgressCheck        Category = "progress_check"
	CategoryFoodAnalysis         Category = "food_analysis"
	CategoryUnknown              Category = "unknown"

	// CategoryAction is a synthetic category used by the direct tool-dispatch
	// path; it is never produced by the classifier.
	CategoryAction Category = "action"
)

// Definition describes one classifiable category: the keywords that trigger
// it, a priority used only to order evaluation (lower evaluates first, which
// is also the tie-break on equal confidence), and a human-readable summary.
type Definition struct {
	Category    Category
	Keywords    []string
	Priority    int
	Description string
}

// Detected is the classifier output for a single user turn.
type Detected struct {
	Category        Category
	Confidence      float64
	MatchedKeywords []string
	Metadata        map[string]any
}

// Signals carries the per-turn context the classifier consults in addition
// to the text itself.
type Signals struct {
	HasImage     bool
	LastIntent   Category
	RecentTopics []string
	MessageCount int
}

// DefaultDefinitions returns the built-in category corpus. The engine mixes
// English and Vietnamese trigger phrases because the client ships both.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Category:    CategoryWorkoutPlan,
			Priority:    10,
			Description: "generate a workout or exercise plan",
			Keywords: []string{
				"workout", "exercise plan", "training", "gym plan",
				"work out", "tập luyện", "lịch tập", "bài tập",
			},
		},
		{
			Category:    CategoryNutritionAdvice,
			Priority:    20,
			Description: "general nutrition and diet questions",
			Keywords: []string{
				"nutrition", "protein", "carb", "vitamin", "diet advice",
				"dinh dưỡng", "calories", "calo",
			},
		},
		{
			Category:    CategoryMealPlanRequest,
			Priority:    30,
			Description: "create a multi-day meal plan",
			Keywords: []string{
				"meal plan", "thực đơn", "plan my meals", "weekly menu",
				"eating plan",
			},
		},
		{
			Category:    CategoryMealPlanModification,
			Priority:    40,
			Description: "change one meal inside an existing plan",
			Keywords: []string{
				"swap meal", "replace meal", "change dinner", "change lunch",
				"change breakfast", "đổi món",
			},
		},
		{
			Category:    CategoryExerciseModification,
			Priority:    50,
			Description: "adjust today's exercises for pain or fatigue",
			Keywords: []string{
				"too hard", "too easy", "my legs hurt", "injury", "sore",
				"đau", "mệt", "adjust workout", "modify workout",
			},
		},
		{
			Category:    CategoryCalendarDeletion,
			Priority:    60,
			Description: "remove a scheduled event",
			Keywords: []string{
				"cancel", "delete event", "remove event", "unschedule",
				"xóa lịch", "hủy lịch",
			},
		},
		{
			Category:    CategoryGeneralHealth,
			Priority:    70,
			Description: "general wellbeing questions",
			Keywords: []string{
				"water", "sleep", "rest", "hydration", "sức khỏe",
				"healthy", "wellness",
			},
		},
		{
			Category:    CategoryMotivation,
			Priority:    80,
			Description: "encouragement and habit support",
			Keywords: []string{
				"motivation", "give up", "tired of", "can't do this",
				"động lực", "encourage",
			},
		},
		{
			Category:    CategoryProgressCheck,
			Priority:    90,
			Description: "progress and statistics review",
			Keywords: []string{
				"progress", "how am i doing", "my stats", "tiến độ",
				"results so far", "weight change",
			},
		},
		{
			Category:    CategoryFoodAnalysis,
			Priority:    100,
			Description: "analyze a described or photographed meal",
			Keywords: []string{
				"analyze", "what did i eat", "this meal", "phân tích",
				"food photo", "how many calories in",
			},
		},
	}
}
