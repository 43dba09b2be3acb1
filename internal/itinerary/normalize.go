// README: Normalizes raw LLM text into an Itinerary; fence stripping plus strict, order-preserving JSON parsing.
package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const fenceMarker = "```"

// StripFence removes one leading markdown fence line (```json, ``` ...) and, if present,
// one trailing fence line. Text that does not start with a fence is only trimmed.
func StripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, fenceMarker) {
		return raw
	}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), fenceMarker) {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Normalize parses the model output. Any syntax error, a top-level value that is not an
// object, or an object with no keys yields a nil Itinerary; nothing is partially accepted.
func Normalize(raw string) (*Itinerary, error) {
	body := []byte(StripFence(raw))
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedItinerary)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object keyed by day", ErrMalformedItinerary)
	}

	it := &Itinerary{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
		}
		label, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: day %q: %v", ErrMalformedItinerary, label, err)
		}
		day, err := parseDay(label, value)
		if err != nil {
			return nil, err
		}

		// A repeated key keeps its first position and takes the later value.
		if i, seen := index[label]; seen {
			it.Days[i] = day
			continue
		}
		index[label] = len(it.Days)
		it.Days = append(it.Days, day)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedItinerary)
	}

	if len(it.Days) == 0 {
		return nil, ErrEmptyItinerary
	}
	return it, nil
}

func parseDay(label string, value json.RawMessage) (Day, error) {
	day := Day{Label: label}
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		day.Note = textOf(trimmed)
		return day, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return Day{}, fmt.Errorf("%w: day %q: %v", ErrMalformedItinerary, label, err)
	}
	day.IsList = true
	day.Activities = make([]Activity, 0, len(items))
	for _, item := range items {
		day.Activities = append(day.Activities, parseActivity(item))
	}
	return day, nil
}

func parseActivity(item json.RawMessage) Activity {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Activity{Plain: true, Text: textOf(trimmed)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Activity{Plain: true, Text: string(trimmed)}
	}
	var a Activity
	if v, ok := fields["activity"]; ok {
		a.Activity = textOf(v)
	}
	if v, ok := fields["time"]; ok {
		a.Time = textOf(v)
	}
	if v, ok := fields["description"]; ok {
		a.Description = textOf(v)
	}
	return a
}

// textOf returns string values unquoted, null as "", and any other JSON value as its
// compact source text.
func textOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
