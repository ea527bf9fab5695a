package change

import (
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// AddColumn adds one or more columns to an existing table.
type AddColumn struct {
	attributes `mapstructure:"-"`

	CatalogName *string      `mapstructure:"catalogName"`
	SchemaName  *string      `mapstructure:"schemaName"`
	TableName   *string      `mapstructure:"tableName"`
	Columns     []ColumnItem `mapstructure:"columns"`
}

// Name implements Change.
func (c *AddColumn) Name() string { return "addColumn" }

// Validate implements Change.
func (c *AddColumn) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("columns", c.Columns)
	validateColumns(c.Columns, target, columnRules{requireType: true, positional: true}, r)
	c.warnUnknown(c.Name(), r)
	return r
}

// DropColumn drops a column, or several when Columns is set.
type DropColumn struct {
	attributes `mapstructure:"-"`

	CatalogName *string      `mapstructure:"catalogName"`
	SchemaName  *string      `mapstructure:"schemaName"`
	TableName   *string      `mapstructure:"tableName"`
	ColumnName  *string      `mapstructure:"columnName"`
	Columns     []ColumnItem `mapstructure:"columns"`
}

// Name implements Change.
func (c *DropColumn) Name() string { return "dropColumn" }

// Validate implements Change.
func (c *DropColumn) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	switch {
	case c.ColumnName != nil && c.Columns != nil:
		r.AddError("dropColumn takes either columnName or columns, not both")
	case c.Columns != nil:
		r.CheckRequiredField("columns", c.Columns)
		validateColumns(c.Columns, target, columnRules{}, r)
	default:
		r.CheckRequiredField("columnName", c.ColumnName)
	}
	if targets(target, database.SQLite) {
		r.AddWarning("dropColumn on sqlite rebuilds the table")
	}
	c.warnUnknown(c.Name(), r)
	return r
}

// RenameColumn renames a column.
type RenameColumn struct {
	attributes `mapstructure:"-"`

	CatalogName    *string `mapstructure:"catalogName"`
	SchemaName     *string `mapstructure:"schemaName"`
	TableName      *string `mapstructure:"tableName"`
	OldColumnName  *string `mapstructure:"oldColumnName"`
	NewColumnName  *string `mapstructure:"newColumnName"`
	ColumnDataType *string `mapstructure:"columnDataType"`
	Remarks        *string `mapstructure:"remarks"`
}

// Name implements Change.
func (c *RenameColumn) Name() string { return "renameColumn" }

// Validate implements Change.
func (c *RenameColumn) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("oldColumnName", c.OldColumnName)
	r.CheckRequiredField("newColumnName", c.NewColumnName)

	// MySQL restates the full column definition when renaming.
	if targets(target, database.MySQL) {
		r.CheckRequiredField("columnDataType", c.ColumnDataType)
	}
	r.CheckDisallowedField("remarks", c.Remarks, target, database.Any(database.SQLite, database.Derby)...)

	if c.OldColumnName != nil && c.NewColumnName != nil && *c.OldColumnName == *c.NewColumnName {
		r.AddWarning("renameColumn has the same old and new column name")
	}
	c.warnUnknown(c.Name(), r)
	return r
}
