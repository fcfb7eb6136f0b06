package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// intensityAliases maps the strings models actually emit (across locales)
// onto the three fixed literals.
var intensityAliases = map[string]Intensity{
	"light":    IntensityLight,
	"low":      IntensityLight,
	"gentle":   IntensityLight,
	"easy":     IntensityLight,
	"nhẹ":      IntensityLight,
	"moderate": IntensityModerate,
	"medium":   IntensityModerate,
	"normal":   IntensityModerate,
	"vừa":      IntensityModerate,
	"intense":  IntensityIntense,
	"high":     IntensityIntense,
	"hard":     IntensityIntense,
	"heavy":    IntensityIntense,
	"nặng":     IntensityIntense,
}

// NormalizeIntensity maps an arbitrary intensity string onto the closed
// set: exact alias first, then substring fallback, then moderate.
func NormalizeIntensity(raw string) Intensity {
	key := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := intensityAliases[key]; ok {
		return mapped
	}
	switch {
	case strings.Contains(key, "intense"), strings.Contains(key, "hard"):
		return IntensityIntense
	case strings.Contains(key, "light"), strings.Contains(key, "easy"):
		return IntensityLight
	default:
		return IntensityModerate
	}
}

var intRe = regexp.MustCompile(`\d+`)

// NormalizeDuration reduces any duration string to "N minutes", taking the
// first integer found and defaulting when there is none.
func NormalizeDuration(raw string) string {
	m := intRe.FindString(raw)
	if m == "" {
		return fmt.Sprintf("%d minutes", DefaultDurationMinutes)
	}
	return m + " minutes"
}

// MatchKnownName fuzzy-matches a generated exercise name against the known
// plan names: case-insensitive substring containment in either direction.
// Unmatched names pass through unchanged.
func MatchKnownName(name string, known []string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return name
	}
	for _, k := range known {
		kl := strings.ToLower(k)
		if strings.Contains(kl, lower) || strings.Contains(lower, kl) {
			return k
		}
	}
	return strings.TrimSpace(name)
}

// ExtractBurn pulls the first integer out of whatever the model put in the
// burn field (number, "about 450 kcal", ...) and clamps it to the domain
// range.
func ExtractBurn(raw string) int {
	m := intRe.FindString(raw)
	if m == "" {
		return DefaultBurnEstimate
	}
	var n int
	fmt.Sscanf(m, "%d", &n)
	return ClampBurn(n)
}

// ClampBurn forces a burn estimate into [MinBurnEstimate, MaxBurnEstimate].
func ClampBurn(n int) int {
	if n < MinBurnEstimate {
		return MinBurnEstimate
	}
	if n > MaxBurnEstimate {
		return MaxBurnEstimate
	}
	return n
}

// defaultReason fills blank exercise reasons.
const defaultReason = "Chosen to fit your current goal and energy level."

// Normalize repairs raw model output and maps it onto the Plan schema.
// knownNames is the caller's whitelist for exercise-name fuzzy matching.
// The boolean is false when the raw text could not be repaired; the caller
// then uses Fallback().
func Normalize(raw string, knownNames []string) (*Plan, bool) {
	repaired, ok := Repair(raw)
	if !ok {
		return nil, false
	}
	root := gjson.Parse(repaired)

	// Build the canonical document field by field; nothing from the raw
	// object survives except what is explicitly mapped.
	doc := "{}"
	doc, _ = sjson.Set(doc, "summary", stringOr(root.Get("summary"), "Your plan for today."))
	doc, _ = sjson.Set(doc, "intensity", string(NormalizeIntensity(root.Get("intensity").String())))

	exercises := root.Get("exercises").Array()
	if len(exercises) > MaxExercises {
		exercises = exercises[:MaxExercises]
	}
	doc, _ = sjson.SetRaw(doc, "exercises", "[]")
	kept := 0
	for _, ex := range exercises {
		name := MatchKnownName(ex.Get("name").String(), knownNames)
		if name == "" {
			continue
		}
		base := fmt.Sprintf("exercises.%d", kept)
		kept++
		doc, _ = sjson.Set(doc, base+".name", name)
		doc, _ = sjson.Set(doc, base+".duration", NormalizeDuration(ex.Get("duration").String()))
		doc, _ = sjson.Set(doc, base+".reason", stringOr(ex.Get("reason"), defaultReason))
	}

	doc, _ = sjson.Set(doc, "totalBurnEstimate", ExtractBurn(root.Get("totalBurnEstimate").String()))
	doc, _ = sjson.Set(doc, "advice", stringOr(root.Get("advice"), "Stay hydrated and pace yourself."))

	var p Plan
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, false
	}
	if p.Exercises == nil {
		p.Exercises = []Exercise{}
	}
	return &p, true
}

func stringOr(res gjson.Result, def string) string {
	s := strings.TrimSpace(res.String())
	if s == "" {
		return def
	}
	return s
}

// ApplyIntakePolicy overrides the model's stated intensity from the user's
// actual calorie-consumption percentage of estimated expenditure. The
// numeric policy is authoritative; the generated intensity is advisory.
func ApplyIntakePolicy(p *Plan, intakePercent float64) {
	switch {
	case intakePercent < 30:
		p.Intensity = IntensityLight
	case intakePercent > 85:
		p.Intensity = IntensityIntense
	case intakePercent > 70 && p.Intensity == IntensityLight:
		p.Intensity = IntensityModerate
	}
}
