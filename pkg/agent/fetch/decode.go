package fetch

import (
	"encoding/json"
	"strings"

	"sales-intel-be/pkg/store"
)

// The dashboard writes loosely shaped JSON into jsonb columns. Every decoder
// here treats each nested field as optional and returns nil instead of
// erroring on shapes it does not recognize.

func asStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return compact(plain)
	}

	var objects []map[string]interface{}
	if err := json.Unmarshal(raw, &objects); err == nil {
		out := make([]string, 0, len(objects))
		for _, obj := range objects {
			for _, key := range []string{"name", "title", "text", "value", "description"} {
				if s, ok := obj[key].(string); ok && s != "" {
					out = append(out, s)
					break
				}
			}
		}
		return compact(out)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return nil
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type transcriptLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

func decodeLines(raw json.RawMessage, limit int) []transcriptLine {
	if len(raw) == 0 {
		return nil
	}

	var lines []transcriptLine
	if err := json.Unmarshal(raw, &lines); err == nil {
		if limit > 0 && len(lines) > limit {
			lines = lines[:limit]
		}
		return lines
	}

	// Some imports store lines as bare strings
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		if limit > 0 && len(plain) > limit {
			plain = plain[:limit]
		}
		out := make([]transcriptLine, len(plain))
		for i, s := range plain {
			out[i] = transcriptLine{Text: s}
		}
		return out
	}

	return nil
}

func decodeContacts(raw json.RawMessage) []store.Contact {
	if len(raw) == 0 {
		return nil
	}
	var contacts []store.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil
	}
	out := contacts[:0]
	for _, c := range contacts {
		if c.Name != "" || c.Email != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodePersonas(raw json.RawMessage) []store.Persona {
	if len(raw) == 0 {
		return nil
	}
	var personas []store.Persona
	if err := json.Unmarshal(raw, &personas); err != nil {
		return nil
	}
	return personas
}

// decodeStringMap flattens a jsonb object of string or list values into
// ordered key/value pairs for rendering.
func decodeStringMap(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			if val != "" {
				out[k] = val
			}
		case []interface{}:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := item.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				out[k] = strings.Join(parts, ", ")
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
