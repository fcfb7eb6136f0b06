package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
}

func TestAddCalendarEventRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendar/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		var ev CalendarEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		ev.ID = "ev-1"
		json.NewEncoder(w).Encode(ev)
	})

	out, err := client.AddCalendarEvent(context.Background(), CalendarEvent{
		UserID: "u1", Title: "Gym", Date: "2026-03-14", Time: "07:00", Category: "workout",
	})
	if err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	if out.ID != "ev-1" || out.Title != "Gym" {
		t.Errorf("unexpected record %+v", out)
	}
}

func TestListCalendarEventsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("user_id = %q", got)
		}
		if got := r.URL.Query().Get("date"); got != "2026-03-14" {
			t.Errorf("date = %q", got)
		}
		json.NewEncoder(w).Encode([]CalendarEvent{{ID: "ev-1"}, {ID: "ev-2"}})
	})

	events, err := client.ListCalendarEvents(context.Background(), "u1", "2026-03-14")
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestNon2xxBecomesError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})

	_, err := client.TodayNutrition(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestDeleteCalendarEvent(t *testing.T) {
	deleted := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/calendar/events/ev-9" {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	})

	if err := client.DeleteCalendarEvent(context.Background(), "u1", "ev-9"); err != nil {
		t.Fatalf("DeleteCalendarEvent: %v", err)
	}
	if !deleted {
		t.Fatal("delete request never reached the server")
	}
}

func TestContextCancellationPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.TodayNutrition(ctx, "u1"); err == nil {
		t.Fatal("cancelled context did not surface an error")
	}
}
