package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != RoleSystem {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{APIKey: "k", BaseURL: srv.URL})
	out, err := client.Complete(context.Background(), "be brief", "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello" {
		t.Fatalf("got %q", out)
	}
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := client.Complete(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error from API error payload")
	}
}

func TestChatRequiresAPIKey(t *testing.T) {
	client := NewHTTPClient(Config{})
	if _, err := client.Complete(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestParseFunctionCall(t *testing.T) {
	content := `Sure, let me do that.
FUNCTION_CALL: {"name": "add_calendar_event", "arguments": {"title": "Gym", "date": "2026-03-14"}}`

	call, ok := ParseFunctionCall(content)
	if !ok {
		t.Fatal("function call not recognized")
	}
	if call.Name != "add_calendar_event" {
		t.Errorf("name = %s", call.Name)
	}
	if call.Arguments["title"] != "Gym" {
		t.Errorf("arguments = %v", call.Arguments)
	}
}

func TestParseFunctionCallPlainText(t *testing.T) {
	if _, ok := ParseFunctionCall("Drink more water and sleep well."); ok {
		t.Fatal("plain text treated as function call")
	}
}

func TestParseFunctionCallWithTrailingProse(t *testing.T) {
	content := `FUNCTION_CALL: {"name": "log_workout", "arguments": {"name": "run"}} hope that helps}`
	call, ok := ParseFunctionCall(content)
	if !ok {
		t.Fatal("function call with trailing prose not recognized")
	}
	if call.Name != "log_workout" {
		t.Errorf("name = %s", call.Name)
	}
}

func TestParseFunctionCallMissingName(t *testing.T) {
	if _, ok := ParseFunctionCall(`FUNCTION_CALL: {"arguments": {}}`); ok {
		t.Fatal("nameless call accepted")
	}
}

func TestParseFunctionCallNilArguments(t *testing.T) {
	call, ok := ParseFunctionCall(`FUNCTION_CALL: {"name": "get_today_nutrition"}`)
	if !ok {
		t.Fatal("call without arguments not recognized")
	}
	if call.Arguments == nil {
		t.Fatal("arguments not defaulted to empty map")
	}
}
