package intent

import (
	"testing"
)

func newTestClassifier() *Classifier {
	return NewClassifier(DefaultDefinitions(), nil)
}

func TestClassifyImageAlwaysFoodAnalysis(t *testing.T) {
	c := newTestClassifier()

	queries := []string{"", "plan my workout", "delete my event", "random text"}
	for _, q := range queries {
		det := c.Classify(q, Signals{HasImage: true})
		if det.Category != CategoryFoodAnalysis {
			t.Errorf("query %q: got %s, want food_analysis", q, det.Category)
		}
		if det.Confidence != 1.0 {
			t.Errorf("query %q: confidence = %v, want 1.0", q, det.Confidence)
		}
	}
}

func TestClassifyFollowUpModifier(t *testing.T) {
	c := newTestClassifier()

	det := c.Classify("make it harder", Signals{LastIntent: CategoryWorkoutPlan})
	if det.Category != CategoryWorkoutPlan {
		t.Fatalf("got %s, want workout_plan", det.Category)
	}
	if det.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", det.Confidence)
	}
}

func TestClassifyFollowUpModifierIgnoredWithoutLastIntent(t *testing.T) {
	c := newTestClassifier()

	det := c.Classify("make it harder", Signals{})
	if det.Confidence == 0.9 {
		t.Fatal("modifier rule fired with no last intent")
	}

	det = c.Classify("make it harder", Signals{LastIntent: CategoryUnknown})
	if det.Confidence == 0.9 {
		t.Fatal("modifier rule fired with unknown last intent")
	}
}

func TestClassifyModifierNeedsWholeWord(t *testing.T) {
	c := newTestClassifier()

	// "tomorrow" contains "more" as a substring but is not a follow-up.
	det := c.Classify("schedule a workout tomorrow", Signals{LastIntent: CategoryMotivation})
	if det.Category == CategoryMotivation && det.Confidence == 0.9 {
		t.Fatal("substring of tomorrow treated as modifier word")
	}
}

func TestClassifyKeywordScoring(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		query string
		want  Category
	}{
		{"give me a workout plan with training for the gym", CategoryWorkoutPlan},
		{"how much protein should i eat", CategoryNutritionAdvice},
		{"build me a meal plan for the week", CategoryMealPlanRequest},
		{"please cancel and delete event on friday", CategoryCalendarDeletion},
		{"i want to give up, i need motivation", CategoryMotivation},
		{"how is my progress so far, show my stats", CategoryProgressCheck},
	}
	for _, tt := range tests {
		det := c.Classify(tt.query, Signals{})
		if det.Category != tt.want {
			t.Errorf("query %q: got %s (conf %v), want %s",
				tt.query, det.Category, det.Confidence, tt.want)
		}
		if det.Confidence <= 0 || det.Confidence > 1 {
			t.Errorf("query %q: confidence %v out of (0,1]", tt.query, det.Confidence)
		}
	}
}

func TestClassifyLowConfidenceIsUnknown(t *testing.T) {
	c := newTestClassifier()

	det := c.Classify("xyzzy plugh", Signals{})
	if det.Category != CategoryUnknown {
		t.Fatalf("got %s, want unknown", det.Category)
	}
	if det.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", det.Confidence)
	}
	if _, ok := det.Metadata["scores"]; !ok {
		t.Fatal("unknown result missing score breakdown")
	}
}

func TestClassifyTiredMakeItEasier(t *testing.T) {
	c := newTestClassifier()

	det := c.Classify("I'm so tired, make it easier", Signals{LastIntent: CategoryWorkoutPlan})
	if det.Category != CategoryWorkoutPlan {
		t.Fatalf("got %s, want workout_plan", det.Category)
	}
	if det.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", det.Confidence)
	}
}

func TestClassifyTopicBoost(t *testing.T) {
	c := newTestClassifier()

	plain := c.Classify("training today?", Signals{})
	boosted := c.Classify("training today?", Signals{RecentTopics: []string{"workout"}})
	if boosted.Category != CategoryWorkoutPlan {
		t.Fatalf("boosted category = %s", boosted.Category)
	}
	if boosted.Confidence < plain.Confidence {
		t.Fatalf("topic overlap lowered confidence: %v < %v", boosted.Confidence, plain.Confidence)
	}
}

func TestClassifyConfidenceNeverExceedsOne(t *testing.T) {
	c := newTestClassifier()

	// Stack enough keywords to saturate the score.
	det := c.Classify("workout exercise plan training gym plan work out", Signals{
		RecentTopics: []string{"workout"},
	})
	if det.Confidence > 1.0 {
		t.Fatalf("confidence %v exceeds 1.0", det.Confidence)
	}
}
