// Package tools provides the capability catalog the action engine dispatches
// side effects through. Each tool declares a parameter contract that is
// validated before its execute function ever runs, so a tool can never
// partially execute on invalid input.
package tools

import (
	"context"
)

// Category groups tools for lookup by the handlers.
type Category string

const (
	CategoryCalendar Category = "calendar"
	CategoryFood     Category = "food"
	CategoryWorkout  Category = "workout"
	CategoryMealPlan Category = "meal_plan"
	CategoryGeneral  Category = "general"
)

// ParamType enumerates the value kinds a tool parameter may declare.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
	ParamDate    ParamType = "date"
)

// Parameter declares one argument of a tool's contract.
type Parameter struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	// Enum restricts the allowed values when non-empty.
	Enum []string `json:"enum,omitempty"`
}

// ExecContext carries the per-request identity a tool needs to address the
// record store.
type ExecContext struct {
	UserID    string
	SessionID string
}

// ExecuteFunc is the signature every tool implements. Validation has already
// passed when it is called.
type ExecuteFunc func(ctx context.Context, args map[string]any, execCtx ExecContext) (*Result, error)

// Tool is a named, schema-validated capability.
type Tool struct {
	Name        string
	Description string
	Category    Category
	Parameters  []Parameter
	Execute     ExecuteFunc
}

// Validate checks the tool definition itself.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// Result is the uniform contract every tool returns. Success is explicit,
// never inferred from the absence of Error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure builds a failed result with a user-facing message.
func Failure(message string) *Result {
	return &Result{Success: false, Message: message, Error: message}
}

// Ok builds a successful result.
func Ok(message string, data any) *Result {
	return &Result{Success: true, Message: message, Data: data}
}
