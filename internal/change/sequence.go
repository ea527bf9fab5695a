package change

import (
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// AddAutoIncrement converts an existing column to an auto-increment column.
type AddAutoIncrement struct {
	attributes `mapstructure:"-"`

	CatalogName    *string `mapstructure:"catalogName"`
	SchemaName     *string `mapstructure:"schemaName"`
	TableName      *string `mapstructure:"tableName"`
	ColumnName     *string `mapstructure:"columnName"`
	ColumnDataType *string `mapstructure:"columnDataType"`
	StartWith      *int64  `mapstructure:"startWith"`
	IncrementBy    *int64  `mapstructure:"incrementBy"`
}

// Name implements Change.
func (c *AddAutoIncrement) Name() string { return "addAutoIncrement" }

// Validate implements Change.
func (c *AddAutoIncrement) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("tableName", c.TableName)
	r.CheckRequiredField("columnName", c.ColumnName)
	r.CheckRequiredField("columnDataType", c.ColumnDataType)
	r.CheckDisallowedField("incrementBy", c.IncrementBy, target, database.Any(database.MySQL)...)

	if targets(target, database.SQLite) {
		r.AddError("addAutoIncrement is not supported on sqlite")
	}
	c.warnUnknown(c.Name(), r)
	return r
}

// CreateSequence creates a database sequence.
type CreateSequence struct {
	attributes `mapstructure:"-"`

	CatalogName  *string `mapstructure:"catalogName"`
	SchemaName   *string `mapstructure:"schemaName"`
	SequenceName *string `mapstructure:"sequenceName"`
	StartValue   *int64  `mapstructure:"startValue"`
	IncrementBy  *int64  `mapstructure:"incrementBy"`
	MinValue     *int64  `mapstructure:"minValue"`
	MaxValue     *int64  `mapstructure:"maxValue"`
	Cycle        *bool   `mapstructure:"cycle"`
	Ordered      *bool   `mapstructure:"ordered"`
	CacheSize    *int64  `mapstructure:"cacheSize"`
}

// Name implements Change.
func (c *CreateSequence) Name() string { return "createSequence" }

// Validate implements Change.
func (c *CreateSequence) Validate(target validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("sequenceName", c.SequenceName)

	// Engines without sequences reject the change outright.
	r.CheckDisallowedField("sequenceName", c.SequenceName, target, database.Any(database.MySQL, database.SQLite)...)
	r.CheckDisallowedField("ordered", c.Ordered, target,
		database.Any(database.PostgreSQL, database.H2, database.MSSQL, database.HSQLDB)...)
	r.CheckDisallowedField("cacheSize", c.CacheSize, target, database.Any(database.H2, database.Derby)...)

	if c.MinValue != nil && c.MaxValue != nil && *c.MinValue > *c.MaxValue {
		r.AddError("createSequence minValue is greater than maxValue")
	}
	c.warnUnknown(c.Name(), r)
	return r
}
