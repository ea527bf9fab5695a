package change

import (
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// clusteredPolicy allows the clustered flag only where indexes can be clustered.
var clusteredPolicy = validator.DisallowedOn(database.Except(database.MSSQL, database.Sybase))

// CreateIndex creates an index on one or more columns.
type CreateIndex struct {
	attributes `mapstructure:"-"`

	CatalogName *string      `mapstructure:"catalogName"`
	SchemaName  *string      `mapstructure:"schemaName"`
	TableName   *string      `mapstructure:"tableName"`
	IndexName   *string      `mapstructure:"indexName"`
	Unique      *bool        `mapstructure:"unique"`
	Clustered   *bool        `mapstructure:"clustered"`
	Tablespace  *string      `mapstructure:"tablespace"`
	Columns     []ColumnItem `mapstructure:"columns"`
}

// Name implements Change.
func (c *CreateIndex) Name() string { return "createIndex" }

// Validate implements Change.
func (c *CreateIndex) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("columns", c.Columns)
	r.CheckDisallowedFieldPolicy("clustered", c.Clustered, target, clusteredPolicy)
	r.CheckDisallowedField("tablespace", c.Tablespace, target, database.Any(database.SQLite, database.H2)...)
	if c.IndexName == nil {
		r.AddWarning("createIndex without indexName gets a generated name")
	}
	validateColumns(c.Columns, target, columnRules{}, r)
	c.warnUnknown(c.Name(), r)
	return r
}

// AddPrimaryKey adds a primary key constraint.
type AddPrimaryKey struct {
	attributes `mapstructure:"-"`

	CatalogName    *string `mapstructure:"catalogName"`
	SchemaName     *string `mapstructure:"schemaName"`
	TableName      *string `mapstructure:"tableName"`
	ColumnNames    *string `mapstructure:"columnNames"`
	ConstraintName *string `mapstructure:"constraintName"`
	Clustered      *bool   `mapstructure:"clustered"`
	Tablespace     *string `mapstructure:"tablespace"`
}

// Name implements Change.
func (c *AddPrimaryKey) Name() string { return "addPrimaryKey" }

// Validate implements Change.
func (c *AddPrimaryKey) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("columnNames", c.ColumnNames)
	r.CheckDisallowedFieldPolicy("clustered", c.Clustered, target, clusteredPolicy)
	r.CheckDisallowedField("tablespace", c.Tablespace, target, database.Any(database.SQLite, database.H2)...)

	// SQLite can only declare primary keys when the table is created.
	if targets(target, database.SQLite) {
		r.AddError("addPrimaryKey is not supported on sqlite")
	}
	c.warnUnknown(c.Name(), r)
	return r
}

// AddForeignKeyConstraint adds a foreign key between two tables.
type AddForeignKeyConstraint struct {
	attributes `mapstructure:"-"`

	BaseTableName         *string `mapstructure:"baseTableName"`
	BaseColumnNames       *string `mapstructure:"baseColumnNames"`
	ReferencedTableName   *string `mapstructure:"referencedTableName"`
	ReferencedColumnNames *string `mapstructure:"referencedColumnNames"`
	ConstraintName        *string `mapstructure:"constraintName"`
	Deferrable            *bool   `mapstructure:"deferrable"`
	InitiallyDeferred     *bool   `mapstructure:"initiallyDeferred"`
	OnDelete              *string `mapstructure:"onDelete"`
	OnUpdate              *string `mapstructure:"onUpdate"`
}

// Name implements Change.
func (c *AddForeignKeyConstraint) Name() string { return "addForeignKeyConstraint" }

// Validate implements Change.
func (c *AddForeignKeyConstraint) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("baseTableName", c.BaseTableName)
	r.CheckRequiredField("baseColumnNames", c.BaseColumnNames)
	r.CheckRequiredField("referencedTableName", c.ReferencedTableName)
	r.CheckRequiredField("referencedColumnNames", c.ReferencedColumnNames)
	r.CheckRequiredField("constraintName", c.ConstraintName)

	nonDeferrable := database.Any(database.MySQL, database.MSSQL, database.SQLite, database.H2, database.Derby)
	r.CheckDisallowedField("deferrable", c.Deferrable, target, nonDeferrable...)
	r.CheckDisallowedField("initiallyDeferred", c.InitiallyDeferred, target, nonDeferrable...)
	r.CheckDisallowedField("onUpdate", c.OnUpdate, target, database.Any(database.Oracle)...)

	if targets(target, database.SQLite) {
		r.AddError("addForeignKeyConstraint is not supported on sqlite")
	}
	c.warnUnknown(c.Name(), r)
	return r
}
