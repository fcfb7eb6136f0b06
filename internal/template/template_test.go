package template

import (
	"strings"
	"testing"

	"fitcoach/internal/intent"
)

func TestRenderSubstitutesDeclaredVariables(t *testing.T) {
	tpl := Template{
		ID:        "t1",
		Category:  intent.CategoryGeneralHealth,
		Text:      "Drink {glasses} glasses, {name}. Again: {glasses}.",
		Variables: []string{"glasses", "name"},
	}
	got := Render(tpl, map[string]any{"glasses": 8, "name": "An"})
	want := "Drink 8 glasses, An. Again: 8."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLeavesMissingPlaceholders(t *testing.T) {
	tpl := Template{
		Text:      "Target {hours} hours of sleep.",
		Variables: []string{"hours"},
	}
	got := Render(tpl, map[string]any{})
	if got != "Target {hours} hours of sleep." {
		t.Fatalf("missing variable was substituted: %q", got)
	}
}

func TestRenderIgnoresUndeclaredVariables(t *testing.T) {
	tpl := Template{
		Text:      "Hello {name}, config is {setting}.",
		Variables: []string{"name"},
	}
	got := Render(tpl, map[string]any{"name": "Ly", "setting": "x"})
	if !strings.Contains(got, "{setting}") {
		t.Fatalf("undeclared variable substituted: %q", got)
	}
}

func TestRenderFullDataLeavesNoPlaceholders(t *testing.T) {
	for _, tpl := range defaultTemplates {
		data := make(map[string]any, len(tpl.Variables))
		for _, v := range tpl.Variables {
			data[v] = "x"
		}
		out := Render(tpl, data)
		for _, v := range tpl.Variables {
			if strings.Contains(out, "{"+v+"}") {
				t.Errorf("template %s: placeholder {%s} survived full data", tpl.ID, v)
			}
		}
	}
}

func TestManagerPickFirstMatch(t *testing.T) {
	m := DefaultManager()

	tpl, ok := m.Pick(intent.CategoryGeneralHealth, func(tpl Template) bool {
		return strings.Contains(tpl.Text, "sleep")
	})
	if !ok {
		t.Fatal("no sleep template found")
	}
	if tpl.ID != "health_sleep" {
		t.Fatalf("picked %s, want health_sleep", tpl.ID)
	}
}

func TestManagerPickNilMatchReturnsFirst(t *testing.T) {
	m := DefaultManager()
	tpl, ok := m.Pick(intent.CategoryMotivation, nil)
	if !ok {
		t.Fatal("no motivation template")
	}
	if tpl.ID != "motivation_tired" {
		t.Fatalf("picked %s, want the first registered", tpl.ID)
	}
}

func TestManagerRandomEmptyCategory(t *testing.T) {
	m := NewManager()
	if _, ok := m.Random(intent.CategoryMotivation); ok {
		t.Fatal("Random returned a template from an empty category")
	}
}
