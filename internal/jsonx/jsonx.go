// Package jsonx recovers JSON values from LLM output. Models routinely wrap
// the JSON they were asked for in prose or markdown fences, or emit minor
// syntax defects; Parse works through a fixed ladder of strategies and only
// reports failure once every one of them is exhausted.
package jsonx

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no strategy could recover a value.
var ErrNoJSON = errors.New("jsonx: no parseable JSON content found")

var (
	fencedBlockRe   = regexp.MustCompile("```(?:[a-zA-Z0-9_+-]*)\\s*([\\s\\S]*?)```")
	fenceMarkerRe   = regexp.MustCompile("```[a-zA-Z0-9_+-]*")
	trailingCommaRe = regexp.MustCompile(`,\s*([\]\}])`)
	barewordKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z0-9_]+)(\s*:)`)
	singleQuotedRe  = regexp.MustCompile(`:\s*'([^']*)'`)
	duplicateComma  = regexp.MustCompile(`,\s*,`)
	objectSpanRe    = regexp.MustCompile(`\{[^{}]*\}`)
)

// Parse extracts one JSON value (object or array) from text.
func Parse(text string) (json.RawMessage, error) {
	// 1. the whole string may already be valid JSON
	if raw, ok := tryParse(text); ok {
		return raw, nil
	}

	// 2. innermost fenced block content
	cleaned := text
	if m := fencedBlockRe.FindStringSubmatch(text); len(m) == 2 {
		cleaned = strings.TrimSpace(m[1])
		if raw, ok := tryParse(cleaned); ok {
			return raw, nil
		}
	} else {
		// 3. no complete block: strip every fence marker and retry
		cleaned = strings.TrimSpace(fenceMarkerRe.ReplaceAllString(text, ""))
		if raw, ok := tryParse(cleaned); ok {
			return raw, nil
		}
	}

	// 4. array fast-path on the cleaned text
	trimmed := strings.TrimSpace(cleaned)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if raw, ok := tryParse(trimmed); ok {
			return raw, nil
		}
	}

	// 5. greedy balanced span: first opener to last matching closer
	if span, ok := bracketSpan(cleaned); ok {
		if raw, ok := tryParse(span); ok {
			return raw, nil
		}
	}

	// 6. heuristic repair of the cleaned text
	if raw, ok := tryParse(repair(cleaned)); ok {
		return raw, nil
	}

	return nil, ErrNoJSON
}

// ParseInto extracts a value and unmarshals it into v.
func ParseInto(text string, v any) error {
	raw, err := Parse(text)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// ParseArray extracts a JSON array. When no array can be recovered whole, it
// falls back to collecting every independently parseable {...} object in the
// text; objects that fail to parse are skipped rather than failing the call.
func ParseArray(text string) ([]json.RawMessage, error) {
	if raw, err := Parse(text); err == nil {
		var items []json.RawMessage
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			return items, nil
		}
		// a lone object counts as a one-element result
		if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
			return []json.RawMessage{raw}, nil
		}
	}

	// 7. salvage individual objects
	var items []json.RawMessage
	for _, span := range objectSpanRe.FindAllString(text, -1) {
		if raw, ok := tryParse(span); ok {
			items = append(items, raw)
		}
	}
	if len(items) == 0 {
		return nil, ErrNoJSON
	}
	return items, nil
}

// ExtractBraceSpan returns the substring between the first '{' and the last
// '}'. It is the question workflow's final fallback before giving up.
func ExtractBraceSpan(text string) (string, bool) {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first < 0 || last <= first {
		return "", false
	}
	return text[first : last+1], true
}

// tryParse accepts only object or array values; a bare string or number in
// prose must not be mistaken for the payload.
func tryParse(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}

func bracketSpan(text string) (string, bool) {
	firstObj := strings.IndexByte(text, '{')
	firstArr := strings.IndexByte(text, '[')

	start := firstObj
	closer := byte('}')
	if firstArr >= 0 && (firstObj < 0 || firstArr < firstObj) {
		start = firstArr
		closer = ']'
	}
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repair applies the cleanup pass for near-JSON: newlines and tabs become
// spaces, trailing and duplicate commas go away, bareword keys get quoted
// and single-quoted values become double-quoted.
func repair(s string) string {
	fixed := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	fixed = trailingCommaRe.ReplaceAllString(fixed, "$1")
	fixed = barewordKeyRe.ReplaceAllString(fixed, `$1"$2"$3`)
	fixed = singleQuotedRe.ReplaceAllString(fixed, `:"$1"`)
	fixed = duplicateComma.ReplaceAllString(fixed, ",")
	if span, ok := bracketSpan(fixed); ok {
		return span
	}
	return fixed
}
