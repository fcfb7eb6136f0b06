package orchestrator

import (
	"context"
	"errors"
	"testing"

	"fitcoach/internal/chat"
	"fitcoach/internal/handler"
	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/tools"
)

type scriptedLLM struct {
	reply string
	err   error
	calls int
}

func (s *scriptedLLM) Chat(ctx context.Context, msgs []llm.Message, params llm.Params) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *scriptedLLM) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.Chat(ctx, nil, llm.Params{})
}

type stubHandler struct {
	resp *handler.Response
	err  error
	can  bool
}

func (h *stubHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool { return h.can }
func (h *stubHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*handler.Response, error) {
	return h.resp, h.err
}

type panicHandler struct{}

func (panicHandler) CanHandle(det intent.Detected, cctx *chat.Context) bool { return true }
func (panicHandler) Handle(ctx context.Context, query string, det intent.Detected, cctx *chat.Context) (*handler.Response, error) {
	panic("boom")
}

func testClassifier(t *testing.T) *intent.Classifier {
	t.Helper()
	return intent.NewClassifier([]intent.Definition{
		{Category: intent.CategoryWorkoutPlan, Keywords: []string{"workout", "exercise plan"}, Priority: 1},
		{Category: intent.CategoryMotivation, Keywords: []string{"motivation", "tired"}, Priority: 2},
	}, nil)
}

func echoTool() *tools.Tool {
	return &tools.Tool{
		Name:        "echo",
		Description: "Echo the text argument.",
		Category:    tools.CategoryGeneral,
		Parameters: []tools.Parameter{
			{Name: "text", Type: tools.ParamString, Required: true},
		},
		Execute: func(ctx context.Context, args map[string]any, execCtx tools.ExecContext) (*tools.Result, error) {
			return tools.Ok(args["text"].(string), nil), nil
		},
	}
}

func TestProcessQueryDispatchesToHandler(t *testing.T) {
	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryWorkoutPlan, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "here is a plan", Intent: intent.CategoryWorkoutPlan},
	})

	e := NewEngine(testClassifier(t), handlers, nil, nil, Options{}, nil)
	cctx := chat.NewSessionContext("u1")
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "give me a workout for today"}, cctx)
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "here is a plan" {
		t.Fatalf("content = %q", resp.Content)
	}
	if cctx.LastIntent() != intent.CategoryWorkoutPlan {
		t.Fatalf("lastIntent = %s", cctx.LastIntent())
	}
	if cctx.MessageCount() != 2 {
		t.Fatalf("message count = %d, want user + assistant", cctx.MessageCount())
	}
}

func TestProcessQueryRecoversFromPanic(t *testing.T) {
	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryWorkoutPlan, panicHandler{})

	e := NewEngine(testClassifier(t), handlers, nil, nil, Options{}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "workout now"}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery returned error after panic: %v", err)
	}
	if resp == nil || resp.Content != systemErrorMessage {
		t.Fatalf("expected generic system-error response, got %+v", resp)
	}
}

func TestProcessQueryFallsBackToUnknownHandler(t *testing.T) {
	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryUnknown, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "fallback answer", Intent: intent.CategoryUnknown},
	})

	e := NewEngine(testClassifier(t), handlers, nil, nil, Options{}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "xyzzy"}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "fallback answer" {
		t.Fatalf("content = %q", resp.Content)
	}
}

func TestToolFirstExecutesParsedCall(t *testing.T) {
	reg := tools.NewRegistry(nil)
	reg.MustRegister(echoTool())
	client := &scriptedLLM{reply: `FUNCTION_CALL: {"name":"echo","arguments":{"text":"done"}}`}

	e := NewEngine(testClassifier(t), handler.NewRegistry(), reg, client, Options{ToolFirst: true}, nil)
	cctx := chat.NewSessionContext("u1")
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "echo done"}, cctx)
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "done" {
		t.Fatalf("content = %q", resp.Content)
	}
	if len(resp.ToolResults) != 1 || !resp.ToolResults[0].Success {
		t.Fatalf("tool results: %+v", resp.ToolResults)
	}
	if cctx.LastIntent() != intent.CategoryAction {
		t.Fatalf("lastIntent = %s", cctx.LastIntent())
	}
}

func TestToolFirstPlainTextFallsThrough(t *testing.T) {
	reg := tools.NewRegistry(nil)
	reg.MustRegister(echoTool())
	client := &scriptedLLM{reply: "just chatting, no tool needed"}

	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryWorkoutPlan, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "classified answer", Intent: intent.CategoryWorkoutPlan},
	})

	e := NewEngine(testClassifier(t), handlers, reg, client, Options{ToolFirst: true}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "workout please"}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "classified answer" {
		t.Fatalf("content = %q, tool-first should have fallen through", resp.Content)
	}
}

func TestToolFirstFailedExecutionFallsThrough(t *testing.T) {
	reg := tools.NewRegistry(nil)
	reg.MustRegister(echoTool())
	// Missing required argument, so the registry rejects the call.
	client := &scriptedLLM{reply: `FUNCTION_CALL: {"name":"echo","arguments":{}}`}

	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryWorkoutPlan, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "classified answer", Intent: intent.CategoryWorkoutPlan},
	})

	e := NewEngine(testClassifier(t), handlers, reg, client, Options{ToolFirst: true}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "workout please"}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "classified answer" {
		t.Fatalf("content = %q", resp.Content)
	}
}

func TestToolFirstSkippedWhenLLMFails(t *testing.T) {
	reg := tools.NewRegistry(nil)
	reg.MustRegister(echoTool())
	client := &scriptedLLM{err: errors.New("service down")}

	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryMotivation, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "you got this", Intent: intent.CategoryMotivation},
	})

	e := NewEngine(testClassifier(t), handlers, reg, client, Options{ToolFirst: true}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "I need motivation"}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "you got this" {
		t.Fatalf("content = %q", resp.Content)
	}
}

func TestImageQueryRoutesToFoodAnalysis(t *testing.T) {
	handlers := handler.NewRegistry()
	handlers.Register(intent.CategoryFoodAnalysis, &stubHandler{
		can:  true,
		resp: &handler.Response{Content: "looks like pho", Intent: intent.CategoryFoodAnalysis},
	})

	e := NewEngine(testClassifier(t), handlers, nil, nil, Options{}, nil)
	resp, err := e.ProcessQuery(context.Background(), Query{Text: "what is this", HasImage: true}, chat.NewSessionContext("u1"))
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if resp.Content != "looks like pho" {
		t.Fatalf("content = %q", resp.Content)
	}
}
