package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fitcoach/internal/chat"
	"fitcoach/internal/extract"
	"fitcoach/internal/intent"
	"fitcoach/internal/plan"
	"fitcoach/internal/profile"
	"fitcoach/internal/store"
)

// WorkoutPlanHandler generates a fresh day plan sized to what the user has
// already eaten today.
type WorkoutPlanHandler struct {
	generator *plan.Generator
	store     *store.Client
	profile   profile.Profile
}

func NewWorkoutPlanHandler(gen *plan.Generator, st *store.Client, prof profile.Profile) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{generator: gen, store: st, profile: prof}
}

func (h *WorkoutPlanHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryWorkoutPlan
}

func (h *WorkoutPlanHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	// "Make it easier" style follow-ups land here with the workout category
	// carried over, so constraints are honored on this path too.
	exclude, forceLight := extract.PainConstraints(query)
	req := plan.Request{
		UserID:         userID(cctx),
		IntakeCalories: todayIntake(ctx, h.store, userID(cctx)),
		Profile:        h.profile,
		Exclude:        exclude,
		UseCache:       len(exclude) == 0 && !forceLight,
	}
	if forceLight {
		req.ForceIntensity = plan.IntensityLight
	}
	p := h.generator.Generate(ctx, req)
	return &Response{
		Content:      formatPlan(p),
		Intent:       det.Category,
		ExercisePlan: p,
	}, nil
}

// ExerciseModificationHandler reworks the current plan around pain or
// fatigue constraints, e.g. "my legs hurt" drops squats and forces a light
// session. Intake and recent workouts are fetched concurrently, both
// degrading to zero values on error.
type ExerciseModificationHandler struct {
	generator *plan.Generator
	store     *store.Client
	profile   profile.Profile
}

func NewExerciseModificationHandler(gen *plan.Generator, st *store.Client, prof profile.Profile) *ExerciseModificationHandler {
	return &ExerciseModificationHandler{generator: gen, store: st, profile: prof}
}

func (h *ExerciseModificationHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool {
	return det.Category == intent.CategoryExerciseModification
}

func (h *ExerciseModificationHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*Response, error) {
	exclude, forceLight := extract.PainConstraints(query)

	var (
		intake   float64
		workouts []store.WorkoutEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		intake = todayIntake(gctx, h.store, userID(cctx))
		return nil
	})
	g.Go(func() error {
		if h.store == nil {
			return nil
		}
		workouts, _ = h.store.ListWorkouts(gctx, userID(cctx), todayDate())
		return nil
	})
	_ = g.Wait()

	req := plan.Request{
		UserID:         userID(cctx),
		IntakeCalories: intake,
		Profile:        h.profile,
		Exclude:        exclude,
	}
	if forceLight {
		req.ForceIntensity = plan.IntensityLight
	}
	p := h.generator.Generate(ctx, req)

	content := formatPlan(p)
	if len(exclude) > 0 {
		content = fmt.Sprintf("I've kept %s out of today's plan.\n\n%s",
			strings.Join(exclude, ", "), content)
	}
	if len(workouts) > 0 {
		content += fmt.Sprintf("\nYou've already logged %d workout(s) today, so take it easy.", len(workouts))
	}
	return &Response{
		Content:      content,
		Intent:       det.Category,
		ExercisePlan: p,
	}, nil
}

// todayIntake returns today's logged calories, or 0 when the store is
// unreachable; a missing total only relaxes the intensity policy.
func todayIntake(ctx context.Context, st *store.Client, user string) float64 {
	if st == nil {
		return 0
	}
	sum, err := st.TodayNutrition(ctx, user)
	if err != nil || sum == nil {
		return 0
	}
	return sum.TotalCalories
}

// todayDate scopes store queries to the current day; the summaries these
// handlers produce speak about "today", not all-time history.
func todayDate() string {
	return time.Now().Format("2006-01-02")
}

func userID(cctx *chat.Context) string {
	if cctx == nil {
		return ""
	}
	return cctx.UserID
}

func formatPlan(p *plan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s intensity)\n", p.Summary, p.Intensity)
	for _, ex := range p.Exercises {
		fmt.Fprintf(&b, "- %s, %s: %s\n", ex.Name, ex.Duration, ex.Reason)
	}
	fmt.Fprintf(&b, "Estimated burn: about %d kcal.", p.TotalBurnEstimate)
	if p.Advice != "" {
		b.WriteString("\n")
		b.WriteString(p.Advice)
	}
	return b.String()
}
