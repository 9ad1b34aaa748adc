// FILE: pkg/extract/extract.go
// PURPOSE: Pull candidate part numbers, model numbers and order IDs out of free text

package extract

import (
	"regexp"
	"strings"
)

var (
	// "PS" plus an optional hyphen/space, then 6 or more digits.
	partNumberRe = regexp.MustCompile(`(?i)\bPS[-\s]?\d{6,}\b`)

	// 2+ uppercase letters, a digit, then uppercase letters/digits, e.g.
	// WDT780SAEM1 or FGID2476SF. Case-sensitive on purpose: the same pattern
	// the catalog metadata was built with. It can match unrelated
	// alphanumeric tokens (serials, SKUs from other domains); that
	// permissiveness is a known limitation kept for parity with the indexed
	// data, pending product review.
	modelNumberRe = regexp.MustCompile(`\b[A-Z]{2,}\d[A-Z0-9]+\b`)

	// "PSO" plus exactly 4 digits.
	orderIdRe = regexp.MustCompile(`(?i)\bPSO\d{4}\b`)
)

// Entities holds the per-turn extraction result. Each field is the first
// match found in the message, or empty when the message carries none.
type Entities struct {
	PartNumber  string
	ModelNumber string
	OrderId     string
}

// PartNumber returns the first part number in text, verbatim.
func PartNumber(text string) string {
	return partNumberRe.FindString(text)
}

// ModelNumber returns the first model-looking token in text, verbatim.
func ModelNumber(text string) string {
	return modelNumberRe.FindString(text)
}

// OrderId returns the first order id in text, uppercased.
func OrderId(text string) string {
	return strings.ToUpper(orderIdRe.FindString(text))
}

// All runs the three extractors over text. Total and non-throwing on any
// input, including the empty string.
func All(text string) Entities {
	return Entities{
		PartNumber:  PartNumber(text),
		ModelNumber: ModelNumber(text),
		OrderId:     OrderId(text),
	}
}
