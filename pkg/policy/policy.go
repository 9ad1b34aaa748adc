// FILE: pkg/policy/policy.go
// PURPOSE: Static policy answers consulted before any retrieval call

package policy

import "strings"

// Entry pairs a policy phrase with its canned answer.
type Entry struct {
	Key    string
	Answer string
}

// table is ordered: lookup walks it top to bottom and the first key found
// as a substring of the message wins.
var table = []Entry{
	{
		Key:    "return policy",
		Answer: "You can return most items within 30 days of delivery. Please visit our Returns page for details.",
	},
	{
		Key:    "cancellation policy",
		Answer: "You can cancel your order within 5 hours of placing it. Orders that are out for delivery/shipped cannot be cancelled. Please visit our Cancellations page for details.",
	},
	{
		Key:    "shipping policy",
		Answer: "Shipping times and costs vary by location, however, we offer free shipping on orders over $50. Standard shipping takes 3-5 business days. Please visit our Shipping page for details.",
	},
}

// Table returns the policy entries in lookup order.
func Table() []Entry {
	return table
}

// Lookup returns the canned answer for the first policy phrase contained in
// message (case-insensitive), or ok=false when no phrase matches and the
// caller should fall through to retrieval.
func Lookup(message string) (string, bool) {
	lowered := strings.ToLower(message)
	for _, e := range table {
		if strings.Contains(lowered, e.Key) {
			return e.Answer, true
		}
	}
	return "", false
}
