package resolver

import (
	"errors"
	"testing"

	"github.com/wanderpoints/platshim/internal/platform"
)

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable(
		Rule{Platform: platform.Web, Module: "m", Substitute: "/a.js"},
		Rule{Platform: platform.Web, Module: "m", Substitute: "/b.js"},
	)
	if !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("err = %v, want ErrDuplicateRule", err)
	}
}

func TestNewTableSameModuleDifferentPlatforms(t *testing.T) {
	table, err := NewTable(
		Rule{Platform: platform.Web, Module: "m", Substitute: "/web.js"},
		Rule{Platform: platform.IOS, Module: "m", Substitute: "/ios.js"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestNewTableRejectsIncompleteRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"no platform", Rule{Module: "m", Substitute: "/a.js"}},
		{"no module", Rule{Platform: platform.Web, Substitute: "/a.js"}},
		{"no substitute", Rule{Platform: platform.Web, Module: "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.rule); !errors.Is(err, ErrInvalidRule) {
				t.Errorf("err = %v, want ErrInvalidRule", err)
			}
		})
	}
}

func TestTableRulesSorted(t *testing.T) {
	table, err := NewTable(
		Rule{Platform: platform.Web, Module: "zeta", Substitute: "/z.js"},
		Rule{Platform: platform.Web, Module: "alpha", Substitute: "/a.js"},
		Rule{Platform: platform.Android, Module: "alpha", Substitute: "/a2.js"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	rules := table.Rules()
	want := []struct {
		module string
		p      platform.Platform
	}{
		{"alpha", platform.Android},
		{"alpha", platform.Web},
		{"zeta", platform.Web},
	}
	if len(rules) != len(want) {
		t.Fatalf("len(Rules()) = %d, want %d", len(rules), len(want))
	}
	for i, w := range want {
		if rules[i].Module != w.module || rules[i].Platform != w.p {
			t.Errorf("Rules()[%d] = %s/%s, want %s/%s", i, rules[i].Module, rules[i].Platform, w.module, w.p)
		}
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup(platform.Web, "m"); ok {
		t.Error("nil table Lookup should miss")
	}
	if table.Len() != 0 || table.Rules() != nil {
		t.Error("nil table should be empty")
	}
}
