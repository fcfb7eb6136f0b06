package intent

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// confidenceThreshold is the floor below which a classification collapses
// to CategoryUnknown.
const confidenceThreshold = 0.2

// followUpModifiers keep a short exchange inside the previous category:
// "make it harder" should not be re-matched against keywords.
var followUpModifiers = []string{
	"harder", "easier", "more", "less", "different", "another", "change",
}

// Classifier scores normalized text against the registered category corpus.
// It is a greedy single-pass linear scorer; ties resolve to whichever
// definition sorts first by priority.
type Classifier struct {
	defs   []Definition
	logger *zap.Logger
}

// NewClassifier builds a classifier over the given definitions. Definitions
// are evaluated sorted by ascending priority; registration order breaks
// priority ties.
func NewClassifier(defs []Definition, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := make([]Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Classifier{defs: sorted, logger: logger}
}

// Classify maps one user turn onto a category.
//
// Priority order: image turns are always food analysis; follow-up modifier
// words inherit the previous non-unknown intent; otherwise every category is
// keyword-scored and the best one wins if it clears the confidence floor.
func (c *Classifier) Classify(text string, sig Signals) Detected {
	if sig.HasImage {
		return Detected{Category: CategoryFoodAnalysis, Confidence: 1.0}
	}

	normalized := strings.ToLower(strings.TrimSpace(text))

	if sig.LastIntent != "" && sig.LastIntent != CategoryUnknown {
		for _, mod := range followUpModifiers {
			if containsWord(normalized, mod) {
				c.logger.Debug("follow-up modifier matched",
					zap.String("modifier", mod),
					zap.String("category", string(sig.LastIntent)))
				return Detected{
					Category:        sig.LastIntent,
					Confidence:      0.9,
					MatchedKeywords: []string{mod},
				}
			}
		}
	}

	best := Detected{Category: CategoryUnknown}
	breakdown := make(map[string]any, len(c.defs))
	for _, def := range c.defs {
		score, matched := c.score(normalized, def, sig.RecentTopics)
		confidence := score / 8.0
		if confidence > 1.0 {
			confidence = 1.0
		}
		breakdown[string(def.Category)] = confidence
		if confidence > best.Confidence {
			best = Detected{
				Category:        def.Category,
				Confidence:      confidence,
				MatchedKeywords: matched,
			}
		}
	}

	if best.Confidence < confidenceThreshold {
		return Detected{
			Category:   CategoryUnknown,
			Confidence: 0,
			Metadata:   map[string]any{"scores": breakdown},
		}
	}
	return best
}

// score computes the raw keyword score for one definition: 2.0 per matched
// keyword, +1.0 for keywords longer than 6 runes, scaled by the matched
// fraction, then boosted 1.2x when a recent topic overlaps the keyword set.
func (c *Classifier) score(normalized string, def Definition, topics []string) (float64, []string) {
	var score float64
	var matched []string
	for _, kw := range def.Keywords {
		if !strings.Contains(normalized, kw) {
			continue
		}
		score += 2.0
		if len([]rune(kw)) > 6 {
			score += 1.0
		}
		matched = append(matched, kw)
	}
	if len(matched) == 0 {
		return 0, nil
	}
	score *= 1 + float64(len(matched))/float64(len(def.Keywords))
	if topicOverlap(topics, def.Keywords) {
		score *= 1.2
	}
	return score, matched
}

func topicOverlap(topics, keywords []string) bool {
	for _, topic := range topics {
		for _, kw := range keywords {
			if strings.Contains(kw, topic) || strings.Contains(topic, kw) {
				return true
			}
		}
	}
	return false
}

// containsWord reports whether text contains w as a whole token, so that
// "more" never fires on "tomorrow".
func containsWord(text, w string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		leftOK := start == 0 || !isWordByte(text[start-1])
		rightOK := end == len(text) || !isWordByte(text[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
