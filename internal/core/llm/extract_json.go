package llm

import (
	"encoding/json"
	"strings"
)

// extractJSON pulls the first valid JSON object or array out of a model
// response, tolerating markdown fences and surrounding prose. Returns the
// input unchanged when nothing valid is found.
func extractJSON(s string) string {
	trimmed := strings.TrimSpace(s)
	if fenced, ok := stripFence(trimmed); ok {
		trimmed = fenced
	}

	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	for _, open := range openersInOrder(trimmed) {
		if candidate, ok := firstBalanced(trimmed, open); ok {
			return candidate
		}
	}

	return s
}

// openersInOrder returns the delimiters to try, earliest occurrence first, so
// an object enclosing an array is not mistaken for the array itself.
func openersInOrder(s string) []byte {
	obj := strings.IndexByte(s, '{')
	arr := strings.IndexByte(s, '[')

	if obj >= 0 && (arr < 0 || obj < arr) {
		return []byte{'{', '['}
	}

	return []byte{'[', '{'}
}

func stripFence(s string) (string, bool) {
	if !strings.HasPrefix(s, "```") {
		return "", false
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s), true
}

func firstBalanced(s string, open byte) (string, bool) {
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}

				return "", false
			}
		}
	}

	return "", false
}
