package change

import (
	"fmt"

	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// Column describes a column in createTable, addColumn and createIndex.
type Column struct {
	Name          *string      `mapstructure:"name"`
	Type          *string      `mapstructure:"type"`
	AutoIncrement *bool        `mapstructure:"autoIncrement"`
	DefaultValue  any          `mapstructure:"defaultValue"`
	Remarks       *string      `mapstructure:"remarks"`
	AfterColumn   *string      `mapstructure:"afterColumn"`
	BeforeColumn  *string      `mapstructure:"beforeColumn"`
	Position      *int         `mapstructure:"position"`
	Constraints   *Constraints `mapstructure:"constraints"`
}

// Constraints holds inline column constraints.
type Constraints struct {
	Nullable   *bool   `mapstructure:"nullable"`
	PrimaryKey *bool   `mapstructure:"primaryKey"`
	Unique     *bool   `mapstructure:"unique"`
	References *string `mapstructure:"references"`
}

// ColumnItem is the "- column: {...}" wrapper used in changelog column lists.
type ColumnItem struct {
	Column *Column `mapstructure:"column"`
}

// columnRules selects which column attributes a change requires.
type columnRules struct {
	requireType bool
	positional  bool
}

// positionPolicy disallows column positioning everywhere except MySQL.
var positionPolicy = validator.DisallowedOn(database.Except(database.MySQL))

// validateColumns checks each column of a column list. Field names are
// qualified with the column's index so messages stay unambiguous.
func validateColumns(items []ColumnItem, target validator.Capability, rules columnRules, r *validator.Result) {
	for i, item := range items {
		prefix := fmt.Sprintf("columns[%d]", i)
		if item.Column == nil {
			r.CheckRequiredField(prefix+".column", item.Column)
			continue
		}
		col := item.Column
		r.CheckRequiredField(prefix+".name", col.Name)
		if rules.requireType {
			r.CheckRequiredField(prefix+".type", col.Type)
		}
		if rules.positional {
			r.CheckDisallowedFieldPolicy(prefix+".afterColumn", col.AfterColumn, target, positionPolicy)
			r.CheckDisallowedFieldPolicy(prefix+".beforeColumn", col.BeforeColumn, target, positionPolicy)
			r.CheckDisallowedFieldPolicy(prefix+".position", col.Position, target, positionPolicy)
		} else {
			r.CheckDisallowedField(prefix+".afterColumn", col.AfterColumn, target)
			r.CheckDisallowedField(prefix+".beforeColumn", col.BeforeColumn, target)
			r.CheckDisallowedField(prefix+".position", col.Position, target)
		}
		if col.Remarks != nil && targets(target, database.SQLite) {
			r.AddWarning(fmt.Sprintf("%s.remarks are not stored on sqlite", prefix))
		}
		if col.AutoIncrement != nil && *col.AutoIncrement && col.Type == nil {
			r.AddWarning(fmt.Sprintf("%s.autoIncrement without a type relies on the database default", prefix))
		}
	}
}
