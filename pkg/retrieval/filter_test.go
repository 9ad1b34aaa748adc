package retrieval

import (
	"testing"
)

func TestFilterEquals(t *testing.T) {
	f := Filter{}.Equals(FieldPartNumberNorm, "ps2375646")

	p, ok := f[FieldPartNumberNorm]
	if !ok {
		t.Fatal("expected part_number_norm predicate")
	}
	if p.Op != OpEquals || p.Value != "ps2375646" {
		t.Errorf("predicate = %+v, want equals ps2375646", p)
	}
}

func TestFilterOneOf(t *testing.T) {
	f := Filter{}.OneOf(FieldCompatibleModelsNorm, "wdt780saem1")

	p := f[FieldCompatibleModelsNorm]
	if p.Op != OpOneOf || len(p.Values) != 1 || p.Values[0] != "wdt780saem1" {
		t.Errorf("predicate = %+v, want one-of [wdt780saem1]", p)
	}
}

func TestFilterChaining(t *testing.T) {
	f := Filter{}.
		Equals(FieldOrderIdNorm, "pso1121").
		OneOf(FieldItemPartNumbersNorm, "ps734935", "ps2375646")

	if len(f) != 2 {
		t.Errorf("expected 2 predicates, got %d", len(f))
	}
}
