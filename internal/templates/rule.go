// Package templates maps wiki template occurrences to structured records
// through an ordered registry of declarative rules.
package templates

import (
	"maps"
	"slices"

	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// Rule describes how one family of templates becomes a record. Rules are
// values: Derive copies every container, so a derived rule never shares
// mutable state with its base.
type Rule struct {
	tag     string
	aliases []string
	rename  map[string]string
	ignore  map[string]struct{}

	variadicStart int // 1-based; 0 disables grouping
	groupKey      string
	groupRename   map[string]string

	transforms map[string]FieldTransform
	extras     map[string]any
}

// Option overrides one part of a rule.
type Option func(*Rule)

// NewRule builds a rule from scratch.
func NewRule(opts ...Option) Rule {
	return Derive(Rule{}, opts...)
}

// Derive returns a copy of base with opts applied.
func Derive(base Rule, opts ...Option) Rule {
	r := base.clone()
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Tag returns the output tag stored under "@id".
func (r Rule) Tag() string { return r.tag }

// Aliases returns the canonical template names the rule matches.
func (r Rule) Aliases() []string { return slices.Clone(r.aliases) }

// VariadicStart returns the 1-based index where groups begin, or 0.
func (r Rule) VariadicStart() int { return r.variadicStart }

// GroupKey returns the output key holding the groups.
func (r Rule) GroupKey() string {
	if r.groupKey == "" {
		return "values"
	}
	return r.groupKey
}

func (r Rule) clone() Rule {
	out := r
	out.aliases = slices.Clone(r.aliases)
	out.rename = maps.Clone(r.rename)
	out.ignore = maps.Clone(r.ignore)
	out.groupRename = maps.Clone(r.groupRename)
	out.transforms = maps.Clone(r.transforms)
	if r.extras != nil {
		out.extras = make(map[string]any, len(r.extras))
		for k, v := range r.extras {
			out.extras[k] = cloneValue(v)
		}
	}
	return out
}

// Tag sets the output tag.
func Tag(tag string) Option {
	return func(r *Rule) { r.tag = tag }
}

// Aliases replaces the matched template names.
func Aliases(names ...string) Option {
	return func(r *Rule) {
		r.aliases = make([]string, 0, len(names))
		for _, n := range names {
			r.aliases = append(r.aliases, wikitext.CanonicalName(n))
		}
	}
}

// Rename replaces the argument rename table.
func Rename(m map[string]string) Option {
	return func(r *Rule) { r.rename = maps.Clone(m) }
}

// WithRename adds entries to the rename table, overriding existing keys.
func WithRename(m map[string]string) Option {
	return func(r *Rule) {
		if r.rename == nil {
			r.rename = make(map[string]string, len(m))
		}
		maps.Copy(r.rename, m)
	}
}

// Ignore replaces the set of dropped argument keys.
func Ignore(keys ...string) Option {
	return func(r *Rule) {
		r.ignore = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			r.ignore[k] = struct{}{}
		}
	}
}

// WithIgnore adds keys to the ignore set.
func WithIgnore(keys ...string) Option {
	return func(r *Rule) {
		if r.ignore == nil {
			r.ignore = make(map[string]struct{}, len(keys))
		}
		for _, k := range keys {
			r.ignore[k] = struct{}{}
		}
	}
}

// Variadic collects positional arguments from start on, and named
// "<prefix><n>" arguments, into a list of groups stored under key. rename
// maps a field prefix to its output name; the "" prefix names bare
// positional values, and mapping a prefix to "" stores the value itself as
// the group element.
func Variadic(start int, key string, rename map[string]string) Option {
	return func(r *Rule) {
		r.variadicStart = start
		r.groupKey = key
		r.groupRename = maps.Clone(rename)
	}
}

// Transforms replaces the per-field post-processing table.
func Transforms(m map[string]FieldTransform) Option {
	return func(r *Rule) { r.transforms = maps.Clone(m) }
}

// Extras replaces the constant fields merged into every record.
func Extras(m map[string]any) Option {
	return func(r *Rule) {
		r.extras = make(map[string]any, len(m))
		for k, v := range m {
			r.extras[k] = cloneValue(v)
		}
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// merge returns a new map holding every entry of ms; later maps win.
func merge(ms ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}
