package templates

import (
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// groupFieldRe matches named group arguments such as "pos2" or "tr10".
var groupFieldRe = regexp.MustCompile(`^(\D+)(\d+)$`)

// Transform maps one template occurrence to a record. It never fails: a
// malformed template yields a record with fewer fields. Empty arguments are
// kept, so "{{affix|en|a||c}}" has three morphemes.
func (r Rule) Transform(t wikitext.Template) domain.Record {
	args := t.Args()
	for k := range args {
		if _, drop := r.ignore[k]; drop {
			delete(args, k)
		}
	}

	out := domain.Record{}
	groups := make(map[int]any)

	// Sorted keys keep collisions (two keys renamed to one field) deterministic.
	for _, key := range slices.Sorted(maps.Keys(args)) {
		val := args[key]
		if idx, field, ok := r.groupSlot(key); ok {
			groups[idx] = mergeGroupField(groups[idx], field, val)
			continue
		}
		out[r.outputKey(key)] = val
	}

	if len(groups) > 0 {
		list := make([]any, 0, len(groups))
		for _, idx := range slices.Sorted(maps.Keys(groups)) {
			list = append(list, groups[idx])
		}
		out[r.GroupKey()] = list
	}

	for key, fn := range r.transforms {
		if v, ok := out[key]; ok {
			out[key] = fn(v)
		}
		if list, ok := out[r.GroupKey()].([]any); ok && key != r.GroupKey() {
			for _, el := range list {
				if m, ok := el.(map[string]any); ok {
					if v, ok := m[key]; ok {
						m[key] = fn(v)
					}
				}
			}
		}
	}

	for k, v := range r.extras {
		out[k] = cloneValue(v)
	}
	out[domain.IDKey] = r.tag
	return out
}

func (r Rule) outputKey(key string) string {
	if to, ok := r.rename[key]; ok {
		return to
	}
	return key
}

// groupSlot reports whether key belongs to a variadic group and returns the
// zero-based group index and the field name inside the group.
func (r Rule) groupSlot(key string) (int, string, bool) {
	if r.variadicStart <= 0 {
		return 0, "", false
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n < r.variadicStart {
			return 0, "", false
		}
		return n - r.variadicStart, r.groupField(""), true
	}
	m := groupFieldRe.FindStringSubmatch(key)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return 0, "", false
	}
	return n - 1, r.groupField(m[1]), true
}

func (r Rule) groupField(prefix string) string {
	if to, ok := r.groupRename[prefix]; ok {
		return to
	}
	if prefix == "" {
		return "value"
	}
	return prefix
}

// mergeGroupField adds one field to a group element. An empty field name
// stores the value as the element itself.
func mergeGroupField(existing any, field, val string) any {
	switch el := existing.(type) {
	case nil:
		if field == "" {
			return val
		}
		return map[string]any{field: val}
	case string:
		if field == "" {
			return val
		}
		return map[string]any{"value": el, field: val}
	case map[string]any:
		if field == "" {
			field = "value"
		}
		el[field] = val
		return el
	default:
		return existing
	}
}
