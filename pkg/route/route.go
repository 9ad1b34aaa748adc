// FILE: pkg/route/route.go
// PURPOSE: Classify a message into a task intent via an ordered rule list

package route

import (
	"strings"

	"parts-assist-be/pkg/extract"
	"parts-assist-be/pkg/store"
)

// Intent is the closed set of task categories a turn can route to.
type Intent string

const (
	IntentProducts           Intent = "products"
	IntentTransactionsPolicy Intent = "transactions_policy"
	IntentTransactionsOrder  Intent = "transactions_order"
)

// Keyword tables. Matching is plain substring containment on the lowered
// message, same as the catalog metadata was routed with.
var (
	policyKeywords = []string{
		"shipping", "delivery", "policy", "refund policy",
		"return policy", "cancellation policy", "cancel policy",
	}
	orderKeywords = []string{
		"order", "status", "track", "tracking",
		"cancel", "return", "refund", "exchange", "city",
	}
)

// Input is everything a routing rule may consult for one turn.
type Input struct {
	Text    string
	Lowered string
	Context *store.SessionContext // nil when the caller has no session
}

// Rule pairs a named predicate with the intent it selects. Rules are
// evaluated in slice order; the first match wins, so the order IS the
// routing priority.
type Rule struct {
	Name    string
	Matches func(in Input) bool
	Intent  Intent
}

// Rules returns the routing table in priority order. Keyword rules come
// before entity rules: policy/action words carry a clearer signal than a
// bare identifier that may appear in an unrelated sentence. The sticky rule
// keeps short follow-ups ("what about tomorrow?") on the order thread.
func Rules() []Rule {
	return []Rule{
		{
			Name:   "policy keyword",
			Intent: IntentTransactionsPolicy,
			Matches: func(in Input) bool {
				return containsAny(in.Lowered, policyKeywords)
			},
		},
		{
			Name:   "order action keyword",
			Intent: IntentTransactionsOrder,
			Matches: func(in Input) bool {
				return containsAny(in.Lowered, orderKeywords)
			},
		},
		{
			Name:   "literal order id",
			Intent: IntentTransactionsOrder,
			Matches: func(in Input) bool {
				return extract.OrderId(in.Text) != ""
			},
		},
		{
			Name:   "part or model mention",
			Intent: IntentProducts,
			Matches: func(in Input) bool {
				return extract.PartNumber(in.Text) != "" || extract.ModelNumber(in.Text) != ""
			},
		},
		{
			Name:   "sticky order follow-up",
			Intent: IntentTransactionsOrder,
			Matches: func(in Input) bool {
				return in.Context != nil && in.Context.ActiveOrder != ""
			},
		},
		{
			Name:    "default",
			Intent:  IntentProducts,
			Matches: func(in Input) bool { return true },
		},
	}
}

// Route classifies text. ctx may be nil when the caller has no session;
// only the sticky follow-up rule reads it.
func Route(text string, ctx *store.SessionContext) Intent {
	in := Input{Text: text, Lowered: strings.ToLower(text), Context: ctx}
	for _, rule := range Rules() {
		if rule.Matches(in) {
			return rule.Intent
		}
	}
	return IntentProducts // unreachable, the default rule always matches
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
