package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sadopc/studyplanner/internal/store"
)

// CSV renders records as comma-separated text. The header is the JSON field
// names of the first record in declaration order. Only string values that
// contain a comma are quoted; nothing is escaped. Arrays render as their
// elements joined by commas, and fields a record lacks render empty.
// No records yields "".
func CSV[T any](records []T) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	headers, _, err := fields(records[0])
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(headers, ","))
	for i, rec := range records {
		_, values, err := fields(rec)
		if err != nil {
			return "", fmt.Errorf("encode record %d: %w", i, err)
		}
		cells := make([]string, len(headers))
		for j, h := range headers {
			cells[j] = cell(values[h])
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n"), nil
}

func AssignmentsCSV(list []store.Assignment) (string, error) {
	return CSV(list)
}

func SubjectsCSV(list []store.Subject) (string, error) {
	return CSV(list)
}

// fields returns rec's JSON object keys in encoding order with their raw values.
func fields(rec any) ([]string, map[string]json.RawMessage, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("record is not an object")
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", key, err)
		}
		keys = append(keys, key)
		values[key] = raw
	}
	return keys, values, nil
}

func cell(raw json.RawMessage) string {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		json.Unmarshal(raw, &s)
		if strings.Contains(s, ",") {
			return `"` + s + `"`
		}
		return s
	}
	return plain(raw)
}

// plain renders a value without quoting.
func plain(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case 'n':
		return ""
	case '"':
		var s string
		json.Unmarshal(raw, &s)
		return s
	case '[':
		var items []json.RawMessage
		json.Unmarshal(raw, &items)
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = plain(it)
		}
		return strings.Join(parts, ",")
	}
	return string(raw)
}
