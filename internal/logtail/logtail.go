// Package logtail reads the tail of the application log for the in-app log
// view and renders the JSON records as display lines.
package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry is one decoded log record.
type Entry struct {
	Time    string
	Level   string
	Message string
	Attrs   map[string]string
}

// Tail returns at most maxLines decoded entries from the end of the log file
// at path. A missing file yields no entries; the log view shows an empty
// state rather than an error.
func Tail(path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	entries := make([]Entry, 0, count)
	start := 0
	if count == maxLines {
		start = idx
	}
	for i := 0; i < count; i++ {
		line := ring[(start+i)%maxLines]
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, decodeLine(line))
	}
	return entries, nil
}

// decodeLine parses one slog JSON record. Lines that are not valid JSON come
// back verbatim in Message so nothing in the log is invisible.
func decodeLine(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: line}
	}

	entry := Entry{}
	if v, ok := raw["time"].(string); ok {
		entry.Time = v
	}
	if v, ok := raw["level"].(string); ok {
		entry.Level = v
	}
	if v, ok := raw["msg"].(string); ok {
		entry.Message = v
	}
	for k, v := range raw {
		switch k {
		case "time", "level", "msg":
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]string)
		}
		entry.Attrs[k] = fmt.Sprintf("%v", v)
	}
	return entry
}

// Format renders an entry as a single display line.
func (e Entry) Format() string {
	parts := make([]string, 0, 4)
	if e.Time != "" {
		// Keep just the clock portion of RFC3339 timestamps.
		t := e.Time
		if i := strings.IndexByte(t, 'T'); i >= 0 && len(t) > i+9 {
			t = t[i+1 : i+9]
		}
		parts = append(parts, t)
	}
	if e.Level != "" {
		parts = append(parts, e.Level)
	}
	parts = append(parts, e.Message)
	if len(e.Attrs) > 0 {
		keys := make([]string, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kv := make([]string, 0, len(keys))
		for _, k := range keys {
			kv = append(kv, k+"="+e.Attrs[k])
		}
		parts = append(parts, strings.Join(kv, " "))
	}
	return strings.Join(parts, "  ")
}
