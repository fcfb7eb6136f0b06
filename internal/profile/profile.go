// Package profile models the user attributes that flow into prompts and
// the energy-expenditure estimate behind the intensity policy.
package profile

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Profile is the subset of account data the engine consumes.
type Profile struct {
	Name          string  `json:"name,omitempty"`
	Age           int     `json:"age,omitempty"`
	Gender        string  `json:"gender,omitempty"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
	HeightCm      float64 `json:"height_cm,omitempty"`
	ActivityLevel string  `json:"activity_level,omitempty"` // sedentary, light, moderate, active
	Goal          string  `json:"goal,omitempty"`           // lose, maintain, gain
}

// defaultTDEE is used when the profile lacks the fields for an estimate.
const defaultTDEE = 2000

// TDEE estimates total daily energy expenditure with Mifflin-St Jeor plus
// an activity multiplier. Incomplete profiles fall back to a fixed default
// so the intensity policy always has a denominator.
func (p Profile) TDEE() float64 {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		return defaultTDEE
	}
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if strings.EqualFold(p.Gender, "female") {
		bmr -= 161
	} else {
		bmr += 5
	}
	return bmr * p.activityFactor()
}

func (p Profile) activityFactor() float64 {
	switch strings.ToLower(p.ActivityLevel) {
	case "sedentary":
		return 1.2
	case "light":
		return 1.375
	case "active":
		return 1.725
	default:
		return 1.55
	}
}

// Fingerprint returns a short stable digest of the profile, used as a cache
// key component.
func (p Profile) Fingerprint() string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d|%s|%.1f|%.1f|%s|%s",
		p.Age, strings.ToLower(p.Gender), p.WeightKg, p.HeightCm,
		strings.ToLower(p.ActivityLevel), strings.ToLower(p.Goal))
	return fmt.Sprintf("%08x", h.Sum32())
}

// PromptLine renders the profile as a single prompt-friendly line.
func (p Profile) PromptLine() string {
	parts := make([]string, 0, 6)
	if p.Age > 0 {
		parts = append(parts, fmt.Sprintf("age %d", p.Age))
	}
	if p.Gender != "" {
		parts = append(parts, p.Gender)
	}
	if p.WeightKg > 0 {
		parts = append(parts, fmt.Sprintf("%.0f kg", p.WeightKg))
	}
	if p.HeightCm > 0 {
		parts = append(parts, fmt.Sprintf("%.0f cm", p.HeightCm))
	}
	if p.ActivityLevel != "" {
		parts = append(parts, "activity: "+p.ActivityLevel)
	}
	if p.Goal != "" {
		parts = append(parts, "goal: "+p.Goal)
	}
	if len(parts) == 0 {
		return "no profile data"
	}
	return strings.Join(parts, ", ")
}
