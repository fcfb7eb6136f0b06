package builtin

import (
	"fitcoach/internal/llm"
	"fitcoach/internal/store"
	"fitcoach/internal/tools"
)

// RegisterAll installs the full builtin capability set into the registry.
func RegisterAll(reg *tools.Registry, st *store.Client, client llm.Client) error {
	groups := [][]*tools.Tool{
		CalendarTools(st),
		FoodTools(st),
		WorkoutTools(st),
		MealPlanTools(st, client),
	}
	for _, group := range groups {
		for _, tool := range group {
			if err := reg.Register(tool); err != nil {
				return err
			}
		}
	}
	return nil
}
