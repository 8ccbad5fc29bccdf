// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"
	"strings"
)

// ExtractJSONObject pulls a JSON object out of model output that may be
// wrapped in prose. A ```json fenced block wins when present; otherwise the
// first balanced {...} span is returned. Returns ErrMalformedResponse when
// neither is found.
func ExtractJSONObject(text string) (string, error) {
	if fenced, ok := fencedBlock(text); ok {
		text = fenced
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in model output: %w", ErrMalformedResponse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in model output: %w", ErrMalformedResponse)
}

// fencedBlock returns the contents of the first ```json (or bare ```) fence.
func fencedBlock(text string) (string, bool) {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(text, marker)
		if start < 0 {
			continue
		}
		rest := text[start+len(marker):]
		end := strings.Index(rest, "```")
		if end < 0 {
			continue
		}
		return strings.TrimSpace(rest[:end]), true
	}
	return "", false
}
