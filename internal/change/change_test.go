package change

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/validator"
)

func lookup(t *testing.T, name string) validator.Capability {
	t.Helper()
	db, err := database.Lookup(name)
	require.NoError(t, err)
	return db
}

func decode(t *testing.T, name string, raw map[string]any) Change {
	t.Helper()
	c, err := Decode(name, raw)
	require.NoError(t, err)
	require.Equal(t, name, c.Name())
	return c
}

func column(attrs map[string]any) map[string]any {
	return map[string]any{"column": attrs}
}

func TestDecode_Unknown(t *testing.T) {
	_, err := Decode("createView", map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownChange))
}

func TestDecode_NilAttributes(t *testing.T) {
	c := decode(t, "dropTable", nil)
	r := c.Validate(nil)
	assert.Equal(t, []string{"tableName is required"}, r.Errors())
}

func TestDecode_WeakTyping(t *testing.T) {
	c := decode(t, "createSequence", map[string]any{
		"sequenceName": 42,
		"startValue":   "10",
	})
	seq := c.(*CreateSequence)
	require.NotNil(t, seq.SequenceName)
	assert.Equal(t, "42", *seq.SequenceName)
	require.NotNil(t, seq.StartValue)
	assert.Equal(t, int64(10), *seq.StartValue)
}

func TestDecode_BadType(t *testing.T) {
	_, err := Decode("createTable", map[string]any{"columns": "not a list"})
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "createTable")
	assert.Contains(t, names, "sql")
	assert.IsIncreasing(t, names)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		change       string
		raw          map[string]any
		target       string
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:   "createTable valid",
			change: "createTable",
			raw: map[string]any{
				"tableName": "person",
				"columns": []any{
					column(map[string]any{"name": "id", "type": "int"}),
				},
			},
			target:       database.PostgreSQL,
			wantErrors:   []string{},
			wantWarnings: []string{},
		},
		{
			name:         "createTable missing everything",
			change:       "createTable",
			raw:          map[string]any{},
			target:       database.PostgreSQL,
			wantErrors:   []string{"tableName is required", "columns is required"},
			wantWarnings: []string{},
		},
		{
			name:   "createTable empty columns and column problems",
			change: "createTable",
			raw: map[string]any{
				"tableName":  "person",
				"tablespace": "fast",
				"columns":    []any{},
			},
			target:       database.SQLite,
			wantErrors:   []string{"columns is empty", "tablespace is not allowed on sqlite"},
			wantWarnings: []string{},
		},
		{
			name:   "createTable column without type",
			change: "createTable",
			raw: map[string]any{
				"tableName": "person",
				"columns": []any{
					column(map[string]any{"name": "id", "afterColumn": "x"}),
					map[string]any{},
				},
			},
			target: database.MySQL,
			wantErrors: []string{
				"columns[0].type is required",
				"columns[0].afterColumn is not allowed on mysql",
				"columns[1].column is required",
			},
			wantWarnings: []string{},
		},
		{
			name:   "addColumn positional only on mysql",
			change: "addColumn",
			raw: map[string]any{
				"tableName": "person",
				"columns": []any{
					column(map[string]any{"name": "email", "type": "varchar(255)", "afterColumn": "id"}),
				},
			},
			target:       database.MariaDB,
			wantErrors:   []string{},
			wantWarnings: []string{},
		},
		{
			name:   "addColumn positional on postgresql",
			change: "addColumn",
			raw: map[string]any{
				"tableName": "person",
				"columns": []any{
					column(map[string]any{"name": "email", "type": "text", "position": 2}),
				},
			},
			target:       database.PostgreSQL,
			wantErrors:   []string{"columns[0].position is not allowed on postgresql"},
			wantWarnings: []string{},
		},
		{
			name:         "dropColumn on sqlite warns",
			change:       "dropColumn",
			raw:          map[string]any{"tableName": "person", "columnName": "email"},
			target:       database.SQLite,
			wantErrors:   []string{},
			wantWarnings: []string{"dropColumn on sqlite rebuilds the table"},
		},
		{
			name:   "dropColumn with both forms",
			change: "dropColumn",
			raw: map[string]any{
				"tableName":  "person",
				"columnName": "email",
				"columns":    []any{column(map[string]any{"name": "phone"})},
			},
			target:       database.PostgreSQL,
			wantErrors:   []string{"dropColumn takes either columnName or columns, not both"},
			wantWarnings: []string{},
		},
		{
			name:         "renameColumn requires data type on mysql family",
			change:       "renameColumn",
			raw:          map[string]any{"tableName": "t", "oldColumnName": "a", "newColumnName": "b"},
			target:       database.MariaDB,
			wantErrors:   []string{"columnDataType is required"},
			wantWarnings: []string{},
		},
		{
			name:         "renameColumn elsewhere",
			change:       "renameColumn",
			raw:          map[string]any{"tableName": "t", "oldColumnName": "a", "newColumnName": "a"},
			target:       database.PostgreSQL,
			wantErrors:   []string{},
			wantWarnings: []string{"renameColumn has the same old and new column name"},
		},
		{
			name:   "createIndex clustered outside mssql",
			change: "createIndex",
			raw: map[string]any{
				"tableName": "t",
				"indexName": "idx_t_a",
				"clustered": true,
				"columns":   []any{column(map[string]any{"name": "a"})},
			},
			target:       database.PostgreSQL,
			wantErrors:   []string{"clustered is not allowed on postgresql"},
			wantWarnings: []string{},
		},
		{
			name:   "createIndex clustered on mssql",
			change: "createIndex",
			raw: map[string]any{
				"tableName": "t",
				"clustered": true,
				"columns":   []any{column(map[string]any{"name": "a"})},
			},
			target:       database.MSSQL,
			wantErrors:   []string{},
			wantWarnings: []string{"createIndex without indexName gets a generated name"},
		},
		{
			name:         "addPrimaryKey on sqlite",
			change:       "addPrimaryKey",
			raw:          map[string]any{"tableName": "t", "columnNames": "id"},
			target:       database.SQLite,
			wantErrors:   []string{"addPrimaryKey is not supported on sqlite"},
			wantWarnings: []string{},
		},
		{
			name:   "addForeignKeyConstraint deferrable on mysql",
			change: "addForeignKeyConstraint",
			raw: map[string]any{
				"baseTableName":         "order",
				"baseColumnNames":       "person_id",
				"referencedTableName":   "person",
				"referencedColumnNames": "id",
				"constraintName":        "fk_order_person",
				"deferrable":            true,
			},
			target:       database.MySQL,
			wantErrors:   []string{"deferrable is not allowed on mysql"},
			wantWarnings: []string{},
		},
		{
			name:   "addForeignKeyConstraint missing fields",
			change: "addForeignKeyConstraint",
			raw:    map[string]any{"baseTableName": "order"},
			target: database.PostgreSQL,
			wantErrors: []string{
				"baseColumnNames is required",
				"referencedTableName is required",
				"referencedColumnNames is required",
				"constraintName is required",
			},
			wantWarnings: []string{},
		},
		{
			name:         "addAutoIncrement incrementBy on mysql",
			change:       "addAutoIncrement",
			raw:          map[string]any{"tableName": "t", "columnName": "id", "columnDataType": "int", "incrementBy": 2},
			target:       database.MySQL,
			wantErrors:   []string{"incrementBy is not allowed on mysql"},
			wantWarnings: []string{},
		},
		{
			name:         "createSequence on mysql",
			change:       "createSequence",
			raw:          map[string]any{"sequenceName": "seq"},
			target:       database.MySQL,
			wantErrors:   []string{"sequenceName is not allowed on mysql"},
			wantWarnings: []string{},
		},
		{
			name:         "createSequence bounds",
			change:       "createSequence",
			raw:          map[string]any{"sequenceName": "seq", "minValue": 10, "maxValue": 1, "ordered": true},
			target:       database.CockroachDB,
			wantErrors:   []string{"ordered is not allowed on cockroachdb", "createSequence minValue is greater than maxValue"},
			wantWarnings: []string{},
		},
		{
			name:         "sql blank",
			change:       "sql",
			raw:          map[string]any{"sql": "   ", "dbms": "postgresql"},
			target:       database.PostgreSQL,
			wantErrors:   []string{"sql must not be blank"},
			wantWarnings: []string{},
		},
		{
			name:         "sql without dbms",
			change:       "sql",
			raw:          map[string]any{"sql": "select 1"},
			target:       database.PostgreSQL,
			wantErrors:   []string{},
			wantWarnings: []string{"raw sql is not checked against the target database; set dbms to restrict it"},
		},
		{
			name:         "unknown attribute",
			change:       "dropTable",
			raw:          map[string]any{"tableName": "t", "ifExists": true},
			target:       database.PostgreSQL,
			wantErrors:   []string{},
			wantWarnings: []string{`dropTable attribute "ifExists" is not recognized and will be ignored`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := decode(t, tt.change, tt.raw)
			r := c.Validate(lookup(t, tt.target))
			if diff := cmp.Diff(tt.wantErrors, r.Errors()); diff != "" {
				t.Errorf("Errors() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantWarnings, r.Warnings()); diff != "" {
				t.Errorf("Warnings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_UnknownTarget(t *testing.T) {
	c := decode(t, "createTable", map[string]any{
		"tableName":  "t",
		"tablespace": "fast",
		"columns":    []any{column(map[string]any{"name": "id", "type": "int", "afterColumn": "x"})},
	})
	r := c.Validate(nil)

	// Selector lists never match an unknown target; empty lists still apply.
	assert.Equal(t, []string{"columns[0].afterColumn is not allowed on unknown"}, r.Errors())
	assert.Equal(t, []string{"columns[0].afterColumn is not allowed on unknown"}, r.UnsupportedErrorMessages())
}
