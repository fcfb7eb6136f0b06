// Package orchestrator is the engine's front door: one ProcessQuery call
// per user turn, choosing between a direct tool attempt and the
// classify-then-dispatch path.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fitcoach/internal/chat"
	"fitcoach/internal/handler"
	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/tools"
)

// Options tune the engine's dispatch strategy.
type Options struct {
	// ToolFirst asks the completion service to pick a tool directly before
	// any classification happens. Plain-text replies and failed tool calls
	// fall through to the classify path.
	ToolFirst bool
}

// Engine ties the classifier, the handler set and the tool registry
// together behind the single caller-facing entry point.
type Engine struct {
	classifier *intent.Classifier
	handlers   *handler.Registry
	tools      *tools.Registry
	llm        llm.Client
	opts       Options
	logger     *zap.Logger
}

func NewEngine(classifier *intent.Classifier, handlers *handler.Registry, reg *tools.Registry, client llm.Client, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		classifier: classifier,
		handlers:   handlers,
		tools:      reg,
		llm:        client,
		opts:       opts,
		logger:     logger,
	}
}

// Query carries the per-turn signals that accompany the raw text.
type Query struct {
	Text     string
	HasImage bool
}

const systemErrorMessage = "Something went wrong on my side. Please try again."

// ProcessQuery handles one user turn. It never returns an error for
// upstream failures; those degrade inside the handlers. Only a programming
// error reaches the recover, and even that turns into a generic response.
func (e *Engine) ProcessQuery(ctx context.Context, q Query, cctx *chat.Context) (resp *handler.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("query processing panicked", zap.Any("panic", r))
			resp = &handler.Response{Content: systemErrorMessage, Intent: intent.CategoryUnknown}
			err = nil
		}
	}()

	cctx.Append(chat.NewTurn(q.Text, true))

	resp = e.process(ctx, q, cctx)

	cctx.Append(chat.NewTurn(resp.Content, false))
	if resp.Intent != "" {
		cctx.SetLastIntent(resp.Intent)
	}
	return resp, nil
}

func (e *Engine) process(ctx context.Context, q Query, cctx *chat.Context) *handler.Response {
	if e.opts.ToolFirst {
		if resp := e.tryToolFirst(ctx, q.Text, cctx); resp != nil {
			return resp
		}
	}

	// Imperative phrasings skip the classifier entirely.
	if resp := e.tryAction(ctx, q.Text, cctx); resp != nil {
		return resp
	}

	det := e.classifier.Classify(q.Text, intent.Signals{
		HasImage:     q.HasImage,
		LastIntent:   cctx.LastIntent(),
		RecentTopics: cctx.Topics(),
		MessageCount: cctx.MessageCount(),
	})
	e.logger.Debug("classified",
		zap.String("category", string(det.Category)),
		zap.Float64("confidence", det.Confidence))

	if resp, err := e.handlers.Dispatch(ctx, q.Text, det, cctx); err == nil && resp != nil {
		return resp
	} else if err != nil {
		e.logger.Warn("handler failed, delegating to fallback",
			zap.String("category", string(det.Category)), zap.Error(err))
	}

	return e.fallback(ctx, q.Text, det, cctx)
}

// tryAction runs the synthetic action category through its handler; a nil
// response means no phrasing matched.
func (e *Engine) tryAction(ctx context.Context, text string, cctx *chat.Context) *handler.Response {
	det := intent.Detected{Category: intent.CategoryAction, Confidence: 1.0}
	resp, err := e.handlers.Dispatch(ctx, text, det, cctx)
	if err != nil || resp == nil {
		return nil
	}
	return resp
}

// tryToolFirst asks the model to answer with a FUNCTION_CALL line. Anything
// else, including a failed tool execution, returns nil so the classify path
// takes over.
func (e *Engine) tryToolFirst(ctx context.Context, text string, cctx *chat.Context) *handler.Response {
	if e.llm == nil || e.tools == nil || e.tools.Count() == 0 {
		return nil
	}
	answer, err := e.llm.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: e.toolPrompt()},
		{Role: llm.RoleUser, Content: text},
	}, llm.Params{Temperature: 0.2, MaxTokens: 300})
	if err != nil {
		e.logger.Warn("tool-first completion failed", zap.Error(err))
		return nil
	}
	call, ok := llm.ParseFunctionCall(answer)
	if !ok {
		return nil
	}
	res := e.tools.Execute(ctx, call.Name, call.Arguments, tools.ExecContext{
		UserID:    cctx.UserID,
		SessionID: cctx.SessionID,
	})
	if !res.Success {
		e.logger.Debug("tool-first execution failed, falling through",
			zap.String("tool", call.Name), zap.String("error", res.Error))
		return nil
	}
	return &handler.Response{
		Content:     res.Message,
		Intent:      intent.CategoryAction,
		ToolResults: []*tools.Result{res},
	}
}

func (e *Engine) toolPrompt() string {
	var b strings.Builder
	b.WriteString("You can call one of these tools. To call a tool, reply with exactly:\n")
	b.WriteString(`FUNCTION_CALL: {"name":"tool_name","arguments":{...}}` + "\n")
	b.WriteString("If no tool fits, reply in plain text instead.\n\nTools:\n")
	for _, t := range e.tools.All() {
		fmt.Fprintf(&b, "- %s: %s", t.Name, t.Description)
		if len(t.Parameters) > 0 {
			params := make([]string, 0, len(t.Parameters))
			for _, p := range t.Parameters {
				spec := fmt.Sprintf("%s (%s", p.Name, p.Type)
				if p.Required {
					spec += ", required"
				}
				if len(p.Enum) > 0 {
					spec += ", one of " + strings.Join(p.Enum, "|")
				}
				params = append(params, spec+")")
			}
			fmt.Fprintf(&b, " Arguments: %s", strings.Join(params, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fallback routes to the unknown handler, or a static message when even
// that is missing.
func (e *Engine) fallback(ctx context.Context, text string, det intent.Detected, cctx *chat.Context) *handler.Response {
	if h := e.handlers.For(intent.CategoryUnknown); h != nil {
		det.Category = intent.CategoryUnknown
		if resp, err := h.Handle(ctx, text, det, cctx); err == nil && resp != nil {
			return resp
		}
	}
	return &handler.Response{Content: systemErrorMessage, Intent: intent.CategoryUnknown}
}
