// FILE: pkg/retrieval/filter.go
// PURPOSE: Per-turn metadata filters for namespace-scoped similarity search

package retrieval

// Namespace is a logical partition of the retrieval index.
type Namespace string

const (
	NamespaceProducts     Namespace = "products"
	NamespaceTransactions Namespace = "transactions"
)

// Metadata field names the repositories know how to translate. Anything
// else in a filter is rejected at query-build time.
const (
	FieldPartNumberNorm       = "part_number_norm"
	FieldCompatibleModelsNorm = "compatible_models_norm"
	FieldOrderIdNorm          = "order_id_norm"
	FieldItemPartNumbersNorm  = "item_part_numbers_norm"
)

// Op is the match predicate kind.
type Op string

const (
	OpEquals Op = "eq" // scalar column equals value
	OpOneOf  Op = "in" // set-valued column contains any of the values
)

// Predicate is one field match condition.
type Predicate struct {
	Op     Op
	Value  string   // OpEquals
	Values []string // OpOneOf
}

// Filter maps a metadata field to its predicate. Built fresh per turn from
// the resolved entities and scoped to the single search that uses it; it is
// never cached and never mutated after construction.
type Filter map[string]Predicate

// Equals adds an exact-match predicate and returns the filter for chaining.
func (f Filter) Equals(field, value string) Filter {
	f[field] = Predicate{Op: OpEquals, Value: value}
	return f
}

// OneOf adds a set-membership predicate.
func (f Filter) OneOf(field string, values ...string) Filter {
	f[field] = Predicate{Op: OpOneOf, Values: values}
	return f
}

// Request describes one similarity search against a namespace.
type Request struct {
	Namespace Namespace
	Query     string
	Filter    Filter // nil means broad search
	TopK      int
}
