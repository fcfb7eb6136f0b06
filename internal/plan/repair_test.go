package plan

import (
	"encoding/json"
	"testing"
)

func TestRepairCleanJSONPasses(t *testing.T) {
	in := `{"summary":"Go","intensity":"light"}`
	out, ok := Repair(in)
	if !ok {
		t.Fatal("clean JSON rejected")
	}
	if !json.Valid([]byte(out)) {
		t.Fatal("output invalid")
	}
}

func TestRepairStripsCodeFences(t *testing.T) {
	in := "```json\n{\"summary\":\"Go\"}\n```"
	out, ok := Repair(in)
	if !ok {
		t.Fatalf("fenced JSON rejected")
	}
	if out != `{"summary":"Go"}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepairCutsSurroundingProse(t *testing.T) {
	in := `Here's your plan: {"summary":"Go","advice":"rest"} Hope it helps!`
	out, ok := Repair(in)
	if !ok {
		t.Fatal("prose-wrapped JSON rejected")
	}
	if out != `{"summary":"Go","advice":"rest"}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepairClosesUnbalancedBrackets(t *testing.T) {
	// Truncated mid-array, exactly the shape models produce when cut off.
	in := `Here's your plan: {"summary":"Go","intensity":"kinda hard","exercises":[{"name":"Running"}`
	out, ok := Repair(in)
	if !ok {
		t.Fatal("truncated JSON not repaired")
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("repaired output still invalid: %q", out)
	}
}

func TestRepairClosesUnterminatedString(t *testing.T) {
	in := `{"summary":"Go for it`
	out, ok := Repair(in)
	if !ok {
		t.Fatalf("unterminated string not repaired")
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("repaired output invalid: %q", out)
	}
}

func TestRepairStripsTrailingCommas(t *testing.T) {
	in := `{"exercises":[{"name":"Yoga"},],"advice":"rest",}`
	out, ok := Repair(in)
	if !ok {
		t.Fatal("trailing commas not stripped")
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("output invalid: %q", out)
	}
}

func TestRepairIgnoresBracesInsideStrings(t *testing.T) {
	in := `{"summary":"use {braces} wisely [ok]"}`
	out, ok := Repair(in)
	if !ok {
		t.Fatal("string-literal braces broke repair")
	}
	if out != in {
		t.Fatalf("repair altered valid input: %q", out)
	}
}

func TestRepairNoObjectFails(t *testing.T) {
	if _, ok := Repair("no json here at all"); ok {
		t.Fatal("text without an object repaired")
	}
	if _, ok := Repair(""); ok {
		t.Fatal("empty input repaired")
	}
}
