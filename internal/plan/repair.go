package plan

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// Repair attempts to recover a parseable JSON object from free-form model
// output. Steps: strip markdown code fences, cut to the first '{' .. last
// '}' span, close any brackets left open outside string literals, drop
// trailing commas, then gate on json.Valid. The boolean is false when no
// amount of repair produced valid JSON.
func Repair(raw string) (string, bool) {
	text := stripCodeFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 {
		return "", false
	}
	if end > start {
		text = text[start : end+1]
	} else {
		text = text[start:]
	}

	text = closeOpenBrackets(text)
	text = trailingCommaRe.ReplaceAllString(text, "$1")

	if !json.Valid([]byte(text)) {
		return "", false
	}
	return text, true
}

// stripCodeFences removes ```json ... ``` wrapping when present.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.Contains(trimmed, "```") {
		return trimmed
	}
	// Drop every fence line; content between fences survives.
	var b strings.Builder
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// closeOpenBrackets appends the closers for any '{' or '[' still open at
// the end of the text, ignoring brackets inside string literals. An
// unterminated string literal is closed first.
func closeOpenBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}
