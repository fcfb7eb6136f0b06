package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func echoTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "echo",
		Category:    CategoryGeneral,
		Execute: func(ctx context.Context, args map[string]any, execCtx ExecContext) (*Result, error) {
			return Ok("done", args), nil
		},
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	if reg == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if reg.Count() != 0 {
		t.Errorf("new registry should be empty, got %d tools", reg.Count())
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry(nil)

	if err := reg.Register(echoTool("echo")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	got := reg.Get("echo")
	if got == nil {
		t.Fatal("Get returned nil for registered tool")
	}
	if got.Name != "echo" {
		t.Errorf("got name %q, want %q", got.Name, "echo")
	}
}

func TestRegisterDuplicateRejected(t *testing.T) {
	reg := NewRegistry(nil)

	if err := reg.Register(echoTool("dupe")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := reg.Register(echoTool("dupe"))
	if !errors.Is(err, ErrToolAlreadyRegistered) {
		t.Fatalf("duplicate Register = %v, want ErrToolAlreadyRegistered", err)
	}
}

func TestReplaceSwapsTool(t *testing.T) {
	reg := NewRegistry(nil)

	if err := reg.Register(echoTool("swap")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	replacement := echoTool("swap")
	replacement.Description = "v2"
	if err := reg.Replace(replacement); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := reg.Get("swap").Description; got != "v2" {
		t.Errorf("description = %q, want v2", got)
	}
	if reg.Count() != 1 {
		t.Errorf("count = %d after replace, want 1", reg.Count())
	}
}

func TestRegisterInvalidTool(t *testing.T) {
	reg := NewRegistry(nil)

	if err := reg.Register(&Tool{Name: ""}); !errors.Is(err, ErrToolNameEmpty) {
		t.Errorf("empty name: got %v", err)
	}
	if err := reg.Register(&Tool{Name: "x"}); !errors.Is(err, ErrToolExecuteNil) {
		t.Errorf("nil execute: got %v", err)
	}
}

func TestExecuteUnknownToolListsNames(t *testing.T) {
	reg := NewRegistry(nil)
	reg.MustRegister(echoTool("alpha"))
	reg.MustRegister(echoTool("beta"))

	res := reg.Execute(context.Background(), "gamma", nil, ExecContext{})
	if res.Success {
		t.Fatal("unknown tool reported success")
	}
	if !strings.Contains(res.Message, "alpha") || !strings.Contains(res.Message, "beta") {
		t.Errorf("message %q does not list registered tools", res.Message)
	}
}

func TestExecuteValidatesRequiredBeforeSideEffect(t *testing.T) {
	reg := NewRegistry(nil)

	executed := false
	reg.MustRegister(&Tool{
		Name:     "guarded",
		Category: CategoryGeneral,
		Parameters: []Parameter{
			{Name: "title", Type: ParamString, Required: true},
			{Name: "date", Type: ParamDate, Required: true},
		},
		Execute: func(ctx context.Context, args map[string]any, execCtx ExecContext) (*Result, error) {
			executed = true
			return Ok("created", nil), nil
		},
	})

	res := reg.Execute(context.Background(), "guarded", map[string]any{"title": "Gym"}, ExecContext{})
	if res.Success {
		t.Fatal("missing required arg reported success")
	}
	if executed {
		t.Fatal("tool body ran despite failed validation")
	}
}

func TestExecuteValidatesEnum(t *testing.T) {
	reg := NewRegistry(nil)
	reg.MustRegister(&Tool{
		Name:     "typed",
		Category: CategoryFood,
		Parameters: []Parameter{
			{Name: "meal_type", Type: ParamString, Enum: []string{"breakfast", "lunch", "dinner", "snack"}},
		},
		Execute: func(ctx context.Context, args map[string]any, execCtx ExecContext) (*Result, error) {
			return Ok("logged", nil), nil
		},
	})

	res := reg.Execute(context.Background(), "typed", map[string]any{"meal_type": "brunch"}, ExecContext{})
	if res.Success {
		t.Fatal("out-of-enum value accepted")
	}
	res = reg.Execute(context.Background(), "typed", map[string]any{"meal_type": "lunch"}, ExecContext{})
	if !res.Success {
		t.Fatalf("valid enum value rejected: %s", res.Message)
	}
	// Enum params that are optional and absent pass validation.
	res = reg.Execute(context.Background(), "typed", map[string]any{}, ExecContext{})
	if !res.Success {
		t.Fatalf("absent optional enum rejected: %s", res.Message)
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	reg := NewRegistry(nil)
	reg.MustRegister(&Tool{
		Name:     "boom",
		Category: CategoryGeneral,
		Execute: func(ctx context.Context, args map[string]any, execCtx ExecContext) (*Result, error) {
			panic("kaput")
		},
	})

	res := reg.Execute(context.Background(), "boom", nil, ExecContext{})
	if res.Success {
		t.Fatal("panicking tool reported success")
	}
	if !strings.Contains(res.Message, "boom") {
		t.Errorf("message %q does not name the tool", res.Message)
	}
}

func TestByCategoryAndAll(t *testing.T) {
	reg := NewRegistry(nil)
	a := echoTool("a")
	a.Category = CategoryCalendar
	b := echoTool("b")
	b.Category = CategoryCalendar
	c := echoTool("c")
	c.Category = CategoryFood
	for _, tool := range []*Tool{a, b, c} {
		reg.MustRegister(tool)
	}

	if got := len(reg.ByCategory(CategoryCalendar)); got != 2 {
		t.Errorf("calendar tools = %d, want 2", got)
	}
	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("All() = %d tools, want 3", len(all))
	}
	// Registration order preserved.
	if all[0].Name != "a" || all[2].Name != "c" {
		t.Errorf("All() order = %s,%s,%s", all[0].Name, all[1].Name, all[2].Name)
	}
}
