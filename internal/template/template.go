// Package template renders keyed canned responses with {name} placeholder
// substitution. Rendering is total: variables the caller does not supply
// stay in the output verbatim.
package template

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"fitcoach/internal/intent"
)

// Template is one canned response. Only the declared Variables are ever
// substituted, even if the text contains other brace tokens.
type Template struct {
	ID        string
	Category  intent.Category
	Text      string
	Variables []string
}

// Render substitutes every {name} occurrence for each declared variable
// present in data. Missing variables are left as literal placeholders and
// never raise an error.
func Render(tpl Template, data map[string]any) string {
	out := tpl.Text
	for _, name := range tpl.Variables {
		val, ok := data[name]
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprintf("%v", val))
	}
	return out
}

// Manager groups templates by category so handlers can pick one
// deterministically or at random.
type Manager struct {
	mu         sync.RWMutex
	byCategory map[intent.Category][]Template
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{byCategory: make(map[intent.Category][]Template)}
}

// Add registers a template under its category.
func (m *Manager) Add(tpl Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCategory[tpl.Category] = append(m.byCategory[tpl.Category], tpl)
}

// Pick returns the first template of the category accepted by match, in
// registration order. A nil match accepts everything.
func (m *Manager) Pick(category intent.Category, match func(Template) bool) (Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tpl := range m.byCategory[category] {
		if match == nil || match(tpl) {
			return tpl, true
		}
	}
	return Template{}, false
}

// Random returns a uniformly picked template of the category.
func (m *Manager) Random(category intent.Category) (Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	group := m.byCategory[category]
	if len(group) == 0 {
		return Template{}, false
	}
	return group[rand.Intn(len(group))], true
}
