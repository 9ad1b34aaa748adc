// FILE: pkg/normalize/normalize.go
// PURPOSE: Canonical identifier form shared by extraction, session context and retrieval filters

package normalize

import "strings"

// Identifier canonicalizes a part/model/order identifier for comparison.
// Lower-cases the input and strips hyphens and spaces, so "PS-8694830",
// "ps 8694830" and "ps8694830" all compare equal. Empty in, empty out.
func Identifier(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
