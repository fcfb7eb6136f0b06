package llm

import (
	"encoding/json"
	"regexp"
)

// FunctionCall is the delimiter-wrapped tool invocation the completion
// service may emit instead of plain text:
//
//	FUNCTION_CALL: {"name": "add_calendar_event", "arguments": {...}}
type FunctionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

var functionCallRe = regexp.MustCompile(`FUNCTION_CALL:\s*(\{[\s\S]*\})`)

// ParseFunctionCall scans assistant content for the function-call envelope.
// It returns (nil, false) for plain text; callers then treat the content as
// a normal answer.
func ParseFunctionCall(content string) (*FunctionCall, bool) {
	m := functionCallRe.FindStringSubmatch(content)
	if m == nil {
		return nil, false
	}
	var call FunctionCall
	if err := json.Unmarshal([]byte(m[1]), &call); err != nil {
		// Try trimming to the outermost braces of the first object; the
		// greedy capture may have swallowed trailing prose.
		trimmed := firstBalancedObject(m[1])
		if trimmed == "" || json.Unmarshal([]byte(trimmed), &call) != nil {
			return nil, false
		}
	}
	if call.Name == "" {
		return nil, false
	}
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	return &call, true
}

// firstBalancedObject returns the first brace-balanced object in s, ignoring
// braces inside string literals.
func firstBalancedObject(s string) string {
	depth := 0
	inString := false
	escaped := false
	start := -1
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
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
