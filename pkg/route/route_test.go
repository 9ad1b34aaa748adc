package route

import (
	"strings"
	"testing"

	"parts-assist-be/pkg/store"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  *store.SessionContext
		want Intent
	}{
		{"policy keyword beats everything", "what is your shipping policy for PSO1121?", nil, IntentTransactionsPolicy},
		{"return policy", "What is your return policy?", nil, IntentTransactionsPolicy},
		{"order action keyword", "cancel order PSO1050", nil, IntentTransactionsOrder},
		{"status keyword without id", "what is the status?", nil, IntentTransactionsOrder},
		{"literal order id without keyword", "PSO1121?", nil, IntentTransactionsOrder},
		{"order question", "Can you tell me about order PSO1121?", nil, IntentTransactionsOrder},
		{"part mention", "What model fits part PS2375646?", nil, IntentProducts},
		{"model mention", "does WDT780SAEM1 need a new pump", nil, IntentProducts},
		{"bare question defaults to products", "my fridge is leaking, help", nil, IntentProducts},
		{
			"sticky order follow-up",
			"what about tomorrow?",
			&store.SessionContext{SessionId: "s1", ActiveOrder: "pso1121"},
			IntentTransactionsOrder,
		},
		{
			"no sticky without active order",
			"what about tomorrow?",
			&store.SessionContext{SessionId: "s1"},
			IntentProducts,
		},
		{"nil context defaults", "what about tomorrow?", nil, IntentProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.text, tt.ctx); got != tt.want {
				t.Errorf("Route(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Each rule is exercised in isolation so a reordering shows up as a failure
// here before it shows up as a behavior change in production.
func TestRulesIndividually(t *testing.T) {
	rules := Rules()
	if len(rules) != 6 {
		t.Fatalf("expected 6 rules, got %d", len(rules))
	}

	in := func(text string, ctx *store.SessionContext) Input {
		return Input{Text: text, Lowered: strings.ToLower(text), Context: ctx}
	}

	if !rules[0].Matches(in("tell me about DELIVERY times", nil)) {
		t.Error("rule 0 (policy keyword) should match 'delivery'")
	}
	if !rules[1].Matches(in("I want a refund", nil)) {
		t.Error("rule 1 (order action keyword) should match 'refund'")
	}
	if !rules[2].Matches(in("pso1121", nil)) {
		t.Error("rule 2 (literal order id) should match")
	}
	if rules[2].Matches(in("PSO11", nil)) {
		t.Error("rule 2 should not match a malformed order id")
	}
	if !rules[3].Matches(in("PS123456", nil)) {
		t.Error("rule 3 (part or model) should match a part number")
	}
	if !rules[4].Matches(in("anything", &store.SessionContext{ActiveOrder: "pso1121"})) {
		t.Error("rule 4 (sticky order) should match with an active order")
	}
	if rules[4].Matches(in("anything", nil)) {
		t.Error("rule 4 should not match without a session context")
	}
	if !rules[5].Matches(in("", nil)) {
		t.Error("rule 5 (default) must match everything")
	}
}
