package handler

import (
	"go.uber.org/zap"

	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/plan"
	"fitcoach/internal/profile"
	"fitcoach/internal/store"
	"fitcoach/internal/template"
	"fitcoach/internal/tools"
)

// Deps carries everything the default handler set needs. Nil members are
// tolerated; the affected handlers degrade to their offline fallbacks.
type Deps struct {
	Tools     *tools.Registry
	Store     *store.Client
	LLM       llm.Client
	Generator *plan.Generator
	Templates *template.Manager
	Profile   profile.Profile
	Logger    *zap.Logger
}

// NewDefaultRegistry wires one handler per category.
func NewDefaultRegistry(d Deps) *Registry {
	if d.Templates == nil {
		d.Templates = template.DefaultManager()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := NewRegistry()
	r.Register(intent.CategoryAction, NewActionHandler(d.Tools, d.Store, d.Logger))
	r.Register(intent.CategoryWorkoutPlan, NewWorkoutPlanHandler(d.Generator, d.Store, d.Profile))
	r.Register(intent.CategoryExerciseModification, NewExerciseModificationHandler(d.Generator, d.Store, d.Profile))
	r.Register(intent.CategoryMealPlanRequest, NewMealPlanHandler(d.Tools))
	r.Register(intent.CategoryMealPlanModification, NewMealPlanHandler(d.Tools))
	r.Register(intent.CategoryCalendarDeletion, NewCalendarDeletionHandler(d.Tools, d.Store))
	r.Register(intent.CategoryGeneralHealth, NewGeneralHealthHandler(d.Templates))
	r.Register(intent.CategoryMotivation, NewMotivationHandler(d.Templates, d.Profile))
	r.Register(intent.CategoryNutritionAdvice, NewNutritionAdviceHandler(d.LLM, d.Templates, d.Profile))
	r.Register(intent.CategoryProgressCheck, NewProgressCheckHandler(d.Store, d.Templates))
	r.Register(intent.CategoryFoodAnalysis, NewFoodAnalysisHandler(d.LLM, d.Tools))
	r.Register(intent.CategoryUnknown, NewUnknownHandler(d.LLM, d.Profile, d.Logger))
	return r
}
