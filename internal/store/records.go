package store

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CalendarEvent is one scheduled entry in the user's calendar.
type CalendarEvent struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

// FoodEntry is one food diary record.
type FoodEntry struct {
	ID       string  `json:"id,omitempty"`
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
	Date     string  `json:"date"`
}

// WorkoutEntry is one completed-workout record.
type WorkoutEntry struct {
	ID              string  `json:"id,omitempty"`
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	CaloriesBurned  float64 `json:"calories_burned"`
	Date            string  `json:"date"`
}

// MealPlan is a stored multi-day meal plan.
type MealPlan struct {
	ID     string            `json:"id,omitempty"`
	UserID string            `json:"user_id"`
	Days   map[string][]Meal `json:"days"`
}

// Meal is one slot inside a meal plan day.
type Meal struct {
	Slot     string  `json:"slot"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// NutritionSummary aggregates one day of diary entries.
type NutritionSummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	EntryCount    int     `json:"entry_count"`
}

// AddCalendarEvent creates a calendar event and returns the stored record.
func (c *Client) AddCalendarEvent(ctx context.Context, ev CalendarEvent) (*CalendarEvent, error) {
	var out CalendarEvent
	if err := c.do(ctx, http.MethodPost, "/calendar/events", nil, ev, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCalendarEvents returns the user's events, optionally filtered by date.
func (c *Client) ListCalendarEvents(ctx context.Context, userID, date string) ([]CalendarEvent, error) {
	q := url.Values{"user_id": {userID}}
	if date != "" {
		q.Set("date", date)
	}
	var out []CalendarEvent
	if err := c.do(ctx, http.MethodGet, "/calendar/events", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCalendarEvent removes one event by ID.
func (c *Client) DeleteCalendarEvent(ctx context.Context, userID, eventID string) error {
	q := url.Values{"user_id": {userID}}
	return c.do(ctx, http.MethodDelete, "/calendar/events/"+eventID, q, nil, nil)
}

// AddFoodEntry appends a food diary record.
func (c *Client) AddFoodEntry(ctx context.Context, entry FoodEntry) (*FoodEntry, error) {
	var out FoodEntry
	if err := c.do(ctx, http.MethodPost, "/food/entries", nil, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodayNutrition returns the aggregated totals for the user's current day.
func (c *Client) TodayNutrition(ctx context.Context, userID string) (*NutritionSummary, error) {
	q := url.Values{
		"user_id": {userID},
		"date":    {time.Now().Format("2006-01-02")},
	}
	var out NutritionSummary
	if err := c.do(ctx, http.MethodGet, "/food/summary", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddWorkoutEntry logs a completed workout.
func (c *Client) AddWorkoutEntry(ctx context.Context, entry WorkoutEntry) (*WorkoutEntry, error) {
	var out WorkoutEntry
	if err := c.do(ctx, http.MethodPost, "/workouts", nil, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkouts returns the user's workouts for a date.
func (c *Client) ListWorkouts(ctx context.Context, userID, date string) ([]WorkoutEntry, error) {
	q := url.Values{"user_id": {userID}}
	if date != "" {
		q.Set("date", date)
	}
	var out []WorkoutEntry
	if err := c.do(ctx, http.MethodGet, "/workouts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveMealPlan stores a generated meal plan.
func (c *Client) SaveMealPlan(ctx context.Context, plan MealPlan) (*MealPlan, error) {
	var out MealPlan
	if err := c.do(ctx, http.MethodPost, "/meal-plans", nil, plan, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMealPlan fetches the user's current meal plan.
func (c *Client) GetMealPlan(ctx context.Context, userID string) (*MealPlan, error) {
	q := url.Values{"user_id": {userID}}
	var out MealPlan
	if err := c.do(ctx, http.MethodGet, "/meal-plans/current", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMealPlan replaces one slot of the stored plan.
func (c *Client) UpdateMealPlan(ctx context.Context, plan MealPlan) (*MealPlan, error) {
	var out MealPlan
	if err := c.do(ctx, http.MethodPut, "/meal-plans/"+plan.ID, nil, plan, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentMeals returns the user's latest diary entries, newest first, for
// prompt enrichment.
func (c *Client) RecentMeals(ctx context.Context, userID string, limit int) ([]FoodEntry, error) {
	q := url.Values{"user_id": {userID}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []FoodEntry
	if err := c.do(ctx, http.MethodGet, "/food/recent", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
