// Package extract holds the heuristic parameter extractors the direct-action
// path uses to pull structured arguments out of free-form text. Matching is
// regex- and table-driven and intentionally fuzzy; the tables mix English
// and Vietnamese because the client ships both. Keep rules here so they can
// be unit-tested and swapped without touching dispatch logic.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Date patterns: explicit relative day words resolve against now.
var relativeDays = []struct {
	words  []string
	offset int
}{
	{[]string{"today", "hôm nay"}, 0},
	{[]string{"tomorrow", "ngày mai", "mai"}, 1},
	{[]string{"yesterday", "hôm qua"}, -1},
}

// Date returns an ISO date (2006-01-02) when the text names a relative day,
// and "" otherwise.
func Date(text string, now time.Time) string {
	lower := strings.ToLower(text)
	for _, rd := range relativeDays {
		for _, w := range rd.words {
			if strings.Contains(lower, w) {
				return now.AddDate(0, 0, rd.offset).Format("2006-01-02")
			}
		}
	}
	return ""
}

var (
	// "7 giờ", "19h", "7h30"
	viTimeRe = regexp.MustCompile(`(\d{1,2})\s*(?:giờ|h)(?:\s*(\d{1,2}))?`)
	// "7am", "7:30 pm"
	enTimeRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
)

// ClockTime returns a HH:MM string when the text contains a recognizable
// time expression, and "" otherwise.
func ClockTime(text string) string {
	lower := strings.ToLower(text)
	if m := enTimeRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return formatClock(hour, minute)
	}
	if m := viTimeRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour <= 23 && minute <= 59 {
			return formatClock(hour, minute)
		}
	}
	return ""
}

func formatClock(hour, minute int) string {
	if hour > 23 || minute > 59 {
		return ""
	}
	return twoDigits(hour) + ":" + twoDigits(minute)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

var firstIntRe = regexp.MustCompile(`\d+`)

// FirstInt returns the first integer appearing in text, or def when none.
func FirstInt(text string, def int) int {
	m := firstIntRe.FindString(text)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

var calorieRe = regexp.MustCompile(`(\d+)\s*(?:k?cal|calo(?:ries?)?)`)

// Calories returns the calorie amount named in text, or 0.
func Calories(text string) int {
	m := calorieRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

var durationRe = regexp.MustCompile(`(\d+)\s*(?:min(?:ute)?s?|phút)`)

// DurationMinutes returns the duration in minutes named in text, or 0.
func DurationMinutes(text string) int {
	m := durationRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// dietKeywords maps preference labels to the phrases that trigger them.
var dietKeywords = map[string][]string{
	"vegetarian": {"vegetarian", "ăn chay"},
	"vegan":      {"vegan", "thuần chay"},
	"keto":       {"keto", "ketogenic"},
	"low-carb":   {"low carb", "low-carb", "ít tinh bột"},
}

// allergyKeywords maps allergy labels to trigger phrases.
var allergyKeywords = map[string][]string{
	"dairy":     {"dairy", "lactose", "milk allergy", "sữa"},
	"gluten":    {"gluten"},
	"nuts":      {"nut allergy", "peanut", "nuts", "hạt"},
	"shellfish": {"shellfish", "shrimp allergy", "hải sản"},
	"soy":       {"soy", "đậu nành"},
}

// DietPreferences returns the dietary preference labels present in text.
func DietPreferences(text string) []string {
	return matchTable(text, dietKeywords)
}

// Allergies returns the allergy labels present in text.
func Allergies(text string) []string {
	return matchTable(text, allergyKeywords)
}

func matchTable(text string, table map[string][]string) []string {
	lower := strings.ToLower(text)
	var out []string
	// Stable order for tests.
	for _, label := range sortedKeys(table) {
		for _, phrase := range table[label] {
			if strings.Contains(lower, phrase) {
				out = append(out, label)
				break
			}
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PainExclusion describes how a reported complaint constrains plan
// generation: exercises to drop and whether intensity must be forced light.
type PainExclusion struct {
	Triggers   []string
	Exclude    []string
	ForceLight bool
}

// painTable maps complaint phrases to plan constraints.
var painTable = []PainExclusion{
	{
		Triggers:   []string{"leg pain", "legs hurt", "knee", "đau chân"},
		Exclude:    []string{"squat", "lunge", "running"},
		ForceLight: true,
	},
	{
		Triggers:   []string{"back pain", "back hurts", "đau lưng"},
		Exclude:    []string{"deadlift", "row", "situp"},
		ForceLight: true,
	},
	{
		Triggers:   []string{"arm pain", "shoulder", "wrist", "đau tay"},
		Exclude:    []string{"pushup", "press", "pullup"},
		ForceLight: false,
	},
	{
		Triggers:   []string{"exhausted", "so tired", "no energy", "quá mệt"},
		Exclude:    []string{"hiit", "sprint"},
		ForceLight: true,
	},
}

// PainConstraints scans text for complaints and merges the matching
// exclusions. forceLight is true when any matched rule demands it.
func PainConstraints(text string) (exclude []string, forceLight bool) {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	for _, rule := range painTable {
		matched := false
		for _, trig := range rule.Triggers {
			if strings.Contains(lower, trig) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, ex := range rule.Exclude {
			if !seen[ex] {
				seen[ex] = true
				exclude = append(exclude, ex)
			}
		}
		forceLight = forceLight || rule.ForceLight
	}
	return exclude, forceLight
}

// slicePatterns pull a free-text name out of common phrasings, e.g.
// "schedule yoga class at 7am" -> "yoga class".
var slicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:schedule|add|book|log|ate|had|did)\s+(?:an?\s+)?(.+?)(?:\s+(?:at|on|for|today|tomorrow|yesterday)\b|$)`),
	regexp.MustCompile(`(?i)(?:delete|remove|cancel)\s+(?:the\s+)?(.+?)(?:\s+(?:event|at|on)\b|$)`),
}

// NamePhrase slices a free-text subject out of the query, or "" when no
// phrasing matches.
func NamePhrase(text string) string {
	for _, re := range slicePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			name = strings.Trim(name, `"'`)
			if name != "" {
				return name
			}
		}
	}
	return ""
}
