// Package chat holds the per-conversation sliding window the engine feeds
// back into classification and prompt construction.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitcoach/internal/intent"
)

const (
	// DefaultMaxTurns bounds the turn FIFO.
	DefaultMaxTurns = 10
	// DefaultMaxTopics bounds the derived topic set.
	DefaultMaxTopics = 20
)

// topicVocabulary is the fixed term list scanned on every appended turn.
// Matching is case-insensitive substring.
var topicVocabulary = []string{
	"workout", "exercise", "gym", "training", "run", "yoga",
	"food", "meal", "protein", "calorie", "diet", "nutrition",
	"progress", "weight", "goal",
	"motivation", "tired", "energy",
}

// Turn is one message in the conversation. Turns are immutable once created.
type Turn struct {
	ID        string
	Text      string
	FromUser  bool
	Timestamp time.Time
}

// NewTurn builds a turn with a fresh ID and the current timestamp.
func NewTurn(text string, fromUser bool) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Text:      text,
		FromUser:  fromUser,
		Timestamp: time.Now(),
	}
}

// Context is the bounded conversation state: the last maxTurns turns, a
// deduplicated topic set capped at maxTopics, and the most recent detected
// intent. Safe for concurrent use; concurrent turns for one session would
// otherwise interleave mutations.
type Context struct {
	// UserID and SessionID identify who this conversation belongs to.
	// They are set at construction and never change; Clear keeps them.
	UserID    string
	SessionID string

	mu        sync.Mutex
	turns     []Turn
	topics    []string
	last      intent.Category
	maxTurns  int
	maxTopics int
}

// NewContext returns an empty context with the default limits.
func NewContext() *Context {
	return NewContextWithLimits(DefaultMaxTurns, DefaultMaxTopics)
}

// NewSessionContext returns an empty context bound to a user, with a fresh
// session ID and the default limits.
func NewSessionContext(userID string) *Context {
	c := NewContext()
	c.UserID = userID
	c.SessionID = uuid.NewString()
	return c
}

// NewContextWithLimits returns an empty context with explicit bounds.
// Non-positive limits fall back to the defaults.
func NewContextWithLimits(maxTurns, maxTopics int) *Context {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}
	return &Context{maxTurns: maxTurns, maxTopics: maxTopics}
}

// Append records a turn, evicting the oldest once the window is full, and
// folds any newly seen vocabulary topics into the topic set.
func (c *Context) Append(turn Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, turn)
	if len(c.turns) > c.maxTurns {
		c.turns = c.turns[len(c.turns)-c.maxTurns:]
	}

	lower := strings.ToLower(turn.Text)
	for _, topic := range topicVocabulary {
		if !strings.Contains(lower, topic) {
			continue
		}
		if c.hasTopicLocked(topic) {
			continue
		}
		c.topics = append(c.topics, topic)
		if len(c.topics) > c.maxTopics {
			c.topics = c.topics[1:]
		}
	}
}

func (c *Context) hasTopicLocked(topic string) bool {
	for _, t := range c.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// RecentAsText joins the last count turns as "User:"/"AI:" lines for prompt
// construction.
func (c *Context) RecentAsText(count int) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	turns := c.turns
	if count > 0 && len(turns) > count {
		turns = turns[len(turns)-count:]
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		if turn.FromUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("AI: ")
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}

// HasRecentTopic reports whether any of the last withinLast turns mentions
// any of the given keywords.
func (c *Context) HasRecentTopic(keywords []string, withinLast int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	turns := c.turns
	if withinLast > 0 && len(turns) > withinLast {
		turns = turns[len(turns)-withinLast:]
	}
	for _, turn := range turns {
		lower := strings.ToLower(turn.Text)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// SetLastIntent remembers the category assigned to the latest user turn.
func (c *Context) SetLastIntent(cat intent.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = cat
}

// LastIntent returns the category assigned to the previous user turn, or
// the empty category when none has been recorded.
func (c *Context) LastIntent() intent.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Topics returns a copy of the current topic set, oldest first.
func (c *Context) Topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.topics))
	copy(out, c.topics)
	return out
}

// MessageCount returns how many turns are currently retained.
func (c *Context) MessageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Clear resets turns, topics and the last intent.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
	c.topics = nil
	c.last = ""
}
