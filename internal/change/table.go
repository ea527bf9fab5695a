package change

import (
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// CreateTable creates a table with its columns.
type CreateTable struct {
	attributes `mapstructure:"-"`

	CatalogName *string      `mapstructure:"catalogName"`
	SchemaName  *string      `mapstructure:"schemaName"`
	TableName   *string      `mapstructure:"tableName"`
	Tablespace  *string      `mapstructure:"tablespace"`
	Remarks     *string      `mapstructure:"remarks"`
	Columns     []ColumnItem `mapstructure:"columns"`
}

// Name implements Change.
func (c *CreateTable) Name() string { return "createTable" }

// Validate implements Change.
func (c *CreateTable) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("columns", c.Columns)
	r.CheckDisallowedField("tablespace", c.Tablespace, target, database.Any(database.SQLite, database.H2)...)
	r.CheckDisallowedField("catalogName", c.CatalogName, target, database.Any(database.SQLite)...)
	if c.Remarks != nil && targets(target, database.SQLite) {
		r.AddWarning("remarks are not stored on sqlite")
	}
	validateColumns(c.Columns, target, columnRules{requireType: true}, r)
	c.warnUnknown(c.Name(), r)
	return r
}

// DropTable drops a table.
type DropTable struct {
	attributes `mapstructure:"-"`

	CatalogName        *string `mapstructure:"catalogName"`
	SchemaName         *string `mapstructure:"schemaName"`
	TableName          *string `mapstructure:"tableName"`
	CascadeConstraints *bool   `mapstructure:"cascadeConstraints"`
}

// Name implements Change.
func (c *DropTable) Name() string { return "dropTable" }

// Validate implements Change.
func (c *DropTable) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckDisallowedField("cascadeConstraints", c.CascadeConstraints, target,
		database.Any(database.SQLite, database.MSSQL, database.Derby)...)
	c.warnUnknown(c.Name(), r)
	return r
}
