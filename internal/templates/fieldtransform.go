package templates

import "strings"

// FieldTransform post-processes one output field. Implementations return
// the input unchanged when it has an unexpected shape.
type FieldTransform func(any) any

// SplitOn splits a delimiter-joined string into trimmed, non-empty parts.
func SplitOn(sep string) FieldTransform {
	return func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		var out []string
		for _, p := range strings.Split(s, sep) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
}

// LookupIn replaces an abbreviation with its expansion from table. Keys are
// matched case-insensitively; unknown values pass through.
func LookupIn(table map[string]string) FieldTransform {
	return func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		if full, ok := table[strings.ToLower(strings.TrimSpace(s))]; ok {
			return full
		}
		return s
	}
}
