package implementation

import (
	"encoding/json"
	"fmt"
	"strings"

	"parts-assist-be/pkg/retrieval"

	"gorm.io/gorm"
)

// applyMetadataFilter translates a retrieval.Filter into WHERE clauses.
// Field names are whitelisted per namespace (the scalarFields/setFields
// maps), so a filter can never smuggle arbitrary SQL; an unknown field or a
// predicate/field shape mismatch is a build-time error surfaced to the turn
// boundary.
func applyMetadataFilter(
	db *gorm.DB,
	filter retrieval.Filter,
	scalarFields map[string]bool,
	setFields map[string]bool,
) (*gorm.DB, error) {
	for field, pred := range filter {
		switch {
		case scalarFields[field]:
			if pred.Op != retrieval.OpEquals {
				return nil, fmt.Errorf("field %s only supports equals, got %s", field, pred.Op)
			}
			db = db.Where(field+" = ?", pred.Value)

		case setFields[field]:
			if pred.Op != retrieval.OpOneOf || len(pred.Values) == 0 {
				return nil, fmt.Errorf("field %s requires a non-empty one-of predicate", field)
			}
			// jsonb array membership: column @> '"value"' for each candidate
			conds := make([]string, len(pred.Values))
			args := make([]interface{}, len(pred.Values))
			for i, v := range pred.Values {
				encoded, err := json.Marshal(v)
				if err != nil {
					return nil, fmt.Errorf("encode filter value %q: %w", v, err)
				}
				conds[i] = field + " @> ?"
				args[i] = string(encoded)
			}
			db = db.Where(strings.Join(conds, " OR "), args...)

		default:
			return nil, fmt.Errorf("unknown metadata filter field: %s", field)
		}
	}
	return db, nil
}
