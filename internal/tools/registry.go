package tools

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Registry holds all available tools and provides lookup and validated
// execution. It is thread-safe and supports registration at runtime.
type Registry struct {
	mu         sync.RWMutex
	tools      map[string]*Tool
	order      []string
	byCategory map[Category][]*Tool
	logger     *zap.Logger
}

// NewRegistry creates a new empty tool registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		tools:      make(map[string]*Tool),
		byCategory: make(map[Category][]*Tool),
		logger:     logger,
	}
}

// Register adds a tool to the registry. Registering a name twice is
// rejected with ErrToolAlreadyRegistered; use Replace for a deliberate swap.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	r.byCategory[tool.Category] = append(r.byCategory[tool.Category], tool)

	r.logger.Debug("registered tool",
		zap.String("name", tool.Name),
		zap.String("category", string(tool.Category)))
	return nil
}

// MustRegister registers a tool and panics on error. Use for static tool
// registration at startup.
func (r *Registry) MustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(fmt.Sprintf("failed to register tool %s: %v", tool.Name, err))
	}
}

// Replace swaps an existing registration, logging a warning so accidental
// shadowing stays visible.
func (r *Registry) Replace(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.tools[tool.Name]
	if exists {
		r.logger.Warn("replacing registered tool", zap.String("name", tool.Name))
		cat := r.byCategory[old.Category]
		for i, t := range cat {
			if t.Name == tool.Name {
				r.byCategory[old.Category] = append(cat[:i], cat[i+1:]...)
				break
			}
		}
	} else {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.byCategory[tool.Category] = append(r.byCategory[tool.Category], tool)
	return nil
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns all registered tools in registration order.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Tool, 0, len(r.tools))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// ByCategory returns all tools in a category.
func (r *Registry) ByCategory(category Category) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, len(r.byCategory[category]))
	copy(tools, r.byCategory[category])
	return tools
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs a tool by name. An unknown name returns a failed Result
// listing every registered tool so the caller (often an LLM) can
// self-correct. Argument validation runs before the tool body; a panic
// inside a tool converts to a failed Result instead of crashing the caller.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any, execCtx ExecContext) *Result {
	tool := r.Get(name)
	if tool == nil {
		return Failure(fmt.Sprintf("unknown tool %q; available tools: %s",
			name, strings.Join(r.Names(), ", ")))
	}

	if err := ValidateArgs(tool, args); err != nil {
		return Failure(fmt.Sprintf("invalid arguments for %s: %v", name, err))
	}

	result, err := r.run(ctx, tool, args, execCtx)
	if err != nil {
		r.logger.Warn("tool execution failed",
			zap.String("tool", name), zap.Error(err))
		return Failure(fmt.Sprintf("%s failed: %v", name, err))
	}
	if result == nil {
		return Failure(fmt.Sprintf("%s returned no result", name))
	}
	return result
}

func (r *Registry) run(ctx context.Context, tool *Tool, args map[string]any, execCtx ExecContext) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked",
				zap.String("tool", tool.Name), zap.Any("panic", rec))
			result = nil
			err = fmt.Errorf("tool %s panicked: %v", tool.Name, rec)
		}
	}()
	return tool.Execute(ctx, args, execCtx)
}

// ValidateArgs checks the supplied arguments against the tool's declared
// parameter contract: every required parameter must be present, and any
// enum-constrained value must be one of the declared literals.
func ValidateArgs(tool *Tool, args map[string]any) error {
	for _, p := range tool.Parameters {
		val, present := args[p.Name]
		if !present || val == nil {
			if p.Required {
				return fmt.Errorf("%w: %s", ErrMissingRequiredArg, p.Name)
			}
			continue
		}
		if len(p.Enum) == 0 {
			continue
		}
		s := argString(val)
		ok := false
		for _, allowed := range p.Enum {
			if s == allowed {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s=%q (allowed: %s)",
				ErrInvalidEnumValue, p.Name, s, strings.Join(p.Enum, ", "))
		}
	}
	return nil
}

func argString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
