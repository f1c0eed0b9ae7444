package templates

import (
	"sync"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/wikitext"
)

// Registry is an ordered rule list. When aliases overlap, the rule
// registered first wins. A Registry is read-only after construction and safe
// for concurrent use.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry builds a registry that keeps rules in the given order.
func NewRegistry(rules ...Rule) *Registry {
	reg := &Registry{
		rules: make([]Rule, len(rules)),
		index: make(map[string]int),
	}
	for i, r := range rules {
		reg.rules[i] = r.clone()
		for _, alias := range r.aliases {
			if _, taken := reg.index[alias]; !taken {
				reg.index[alias] = i
			}
		}
	}
	return reg
}

// Default returns the registry holding every built-in rule.
var Default = sync.OnceValue(func() *Registry {
	return NewRegistry(DefaultRules()...)
})

// Match returns the first rule whose aliases contain the canonical form of name.
func (r *Registry) Match(name string) (Rule, bool) {
	i, ok := r.index[wikitext.CanonicalName(name)]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// Transform maps t with its matching rule. It reports false when no rule
// matches; such templates contribute no record.
func (r *Registry) Transform(t wikitext.Template) (domain.Record, bool) {
	rule, ok := r.Match(t.Name)
	if !ok {
		return nil, false
	}
	return rule.Transform(t), true
}

// Rules returns the rules in priority order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int { return len(r.rules) }

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	var out []Rule
	for _, family := range [][]Rule{
		linkRules(),
		etymologyRules(),
		pronunciationRules(),
		semanticRules(),
		sentenceRules(),
		headwordRules(),
		otherRules(),
		translationRules(),
		fallbackRules(),
	} {
		out = append(out, family...)
	}
	return out
}
