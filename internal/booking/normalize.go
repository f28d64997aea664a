package booking

import (
	"encoding/json"
	"strings"
)

// normalizeAddress accepts either a structured address object or a string.
// String forms may themselves be JSON (legacy rows wrote the object through a
// text column) or a free-form single line, which lands in Line1.
func normalizeAddress(raw json.RawMessage) Address {
	if len(raw) == 0 || string(raw) == "null" {
		return Address{}
	}

	var addr Address
	if err := json.Unmarshal(raw, &addr); err == nil {
		return addr
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return Address{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}
	}
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &addr); err == nil {
			return addr
		}
	}
	return Address{Line1: text}
}

// normalizeServices accepts a JSON array of strings, a JSON-encoded array
// inside a string, or a comma-separated string.
func normalizeServices(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &list); err == nil {
			return trimAll(list)
		}
	}
	return trimAll(strings.Split(text, ","))
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// String renders the address as a single display line.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.Postcode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether the address carries no data.
func (a Address) IsZero() bool {
	return a == Address{}
}
