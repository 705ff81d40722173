package resolver

import (
	"fmt"
	"sort"

	"github.com/wanderpoints/platshim/internal/platform"
)

// Rule substitutes Module with the file at Substitute when bundling for
// Platform.
type Rule struct {
	Platform   platform.Platform
	Module     string
	Substitute string
}

type ruleKey struct {
	platform platform.Platform
	module   string
}

// Table is an immutable set of substitution rules.
type Table struct {
	rules map[ruleKey]Rule
}

// NewTable builds a table from rules. Every field of a rule must be set and
// each (platform, module) pair may appear once.
func NewTable(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[ruleKey]Rule, len(rules))}
	for i, r := range rules {
		if r.Platform == "" || r.Module == "" || r.Substitute == "" {
			return nil, fmt.Errorf("%w: rule %d must set platform, module and substitute", ErrInvalidRule, i)
		}
		k := ruleKey{platform: r.Platform, module: r.Module}
		if _, ok := t.rules[k]; ok {
			return nil, fmt.Errorf("%w: %s on %s", ErrDuplicateRule, r.Module, r.Platform)
		}
		t.rules[k] = r
	}
	return t, nil
}

// Lookup returns the rule for (p, module), if any.
func (t *Table) Lookup(p platform.Platform, module string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	r, ok := t.rules[ruleKey{platform: p, module: module}]
	return r, ok
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rules sorted by module, then platform.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Module != out[j].Module {
			return out[i].Module < out[j].Module
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}
