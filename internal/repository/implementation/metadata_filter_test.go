package implementation

import (
	"testing"

	"parts-assist-be/pkg/retrieval"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// DryRun session: statements are built but never executed, so the generated
// SQL and bind vars can be asserted without a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run session: %v", err)
	}
	return db
}

func buildFilterSQL(t *testing.T, filter retrieval.Filter) (string, []interface{}, error) {
	t.Helper()
	query := newDryRunDB(t).Table("products").Select("products.*")
	query, err := applyMetadataFilter(query, filter, productScalarFields, productSetFields)
	if err != nil {
		return "", nil, err
	}
	var rows []map[string]interface{}
	tx := query.Find(&rows)
	return tx.Statement.SQL.String(), tx.Statement.Vars, nil
}

func TestMetadataFilterEqualsClause(t *testing.T) {
	filter := retrieval.Filter{}.Equals(retrieval.FieldPartNumberNorm, "ps2375646")

	sql, vars, err := buildFilterSQL(t, filter)
	assert.NoError(t, err)
	assert.Contains(t, sql, "part_number_norm = ?")
	assert.Contains(t, vars, "ps2375646")
}

func TestMetadataFilterOneOfBuildsJsonbMembership(t *testing.T) {
	filter := retrieval.Filter{}.OneOf(retrieval.FieldCompatibleModelsNorm, "wdt780saem1")

	sql, vars, err := buildFilterSQL(t, filter)
	assert.NoError(t, err)
	assert.Contains(t, sql, "compatible_models_norm @> ?")
	// values are bound JSON-encoded so @> does string membership, not
	// whole-array comparison
	assert.Contains(t, vars, `"wdt780saem1"`)
}

func TestMetadataFilterOneOfMultipleValues(t *testing.T) {
	filter := retrieval.Filter{}.OneOf(retrieval.FieldCompatibleModelsNorm, "wdt780saem1", "wrs325fdam04")

	sql, vars, err := buildFilterSQL(t, filter)
	assert.NoError(t, err)
	assert.Contains(t, sql, "compatible_models_norm @> ? OR compatible_models_norm @> ?")
	assert.Contains(t, vars, `"wdt780saem1"`)
	assert.Contains(t, vars, `"wrs325fdam04"`)
}

func TestMetadataFilterNilFilterAddsNoClauses(t *testing.T) {
	sql, _, err := buildFilterSQL(t, nil)
	assert.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
}

func TestMetadataFilterRejectsUnknownField(t *testing.T) {
	filter := retrieval.Filter{}.Equals("status", "shipped")

	_, _, err := buildFilterSQL(t, filter)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unknown metadata filter field")
	}
}

func TestMetadataFilterRejectsShapeMismatch(t *testing.T) {
	// one-of on a scalar column
	_, _, err := buildFilterSQL(t, retrieval.Filter{}.OneOf(retrieval.FieldPartNumberNorm, "ps2375646"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "only supports equals")
	}

	// equals on a set-valued column
	_, _, err = buildFilterSQL(t, retrieval.Filter{}.Equals(retrieval.FieldCompatibleModelsNorm, "wdt780saem1"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "non-empty one-of")
	}

	// one-of with no values
	_, _, err = buildFilterSQL(t, retrieval.Filter{retrieval.FieldCompatibleModelsNorm: retrieval.Predicate{Op: retrieval.OpOneOf}})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "non-empty one-of")
	}
}

func TestMetadataFilterOrderNamespaceFields(t *testing.T) {
	query := newDryRunDB(t).Table("orders").Select("orders.*")
	filter := retrieval.Filter{}.
		Equals(retrieval.FieldOrderIdNorm, "pso1121").
		OneOf(retrieval.FieldItemPartNumbersNorm, "ps734935")

	query, err := applyMetadataFilter(query, filter, orderScalarFields, orderSetFields)
	assert.NoError(t, err)

	var rows []map[string]interface{}
	tx := query.Find(&rows)
	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "order_id_norm = ?")
	assert.Contains(t, sql, "item_part_numbers_norm @> ?")
}
