package main

import "testing"

func TestQueryForPhotoPrefix(t *testing.T) {
	q := queryFor("photo: grilled chicken with rice")
	if !q.HasImage {
		t.Fatal("photo prefix should set HasImage")
	}
	if q.Text != "grilled chicken with rice" {
		t.Fatalf("text = %q", q.Text)
	}

	q = queryFor("plan me a workout")
	if q.HasImage {
		t.Fatal("plain text should not set HasImage")
	}
}

func TestRunMetaCommandQuit(t *testing.T) {
	for _, cmd := range []string{"/quit", "/exit", "/q", "/QUIT"} {
		if !runMetaCommand(nil, cmd) {
			t.Errorf("%s should end the loop", cmd)
		}
	}
	if runMetaCommand(nil, "/help") {
		t.Error("/help should not end the loop")
	}
}
