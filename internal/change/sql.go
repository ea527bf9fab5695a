package change

import (
	"strings"

	"github.com/thoreinstein/changelint/internal/validator"
)

// SQL runs raw SQL.
type SQL struct {
	attributes `mapstructure:"-"`

	SQL             *string `mapstructure:"sql"`
	DBMS            *string `mapstructure:"dbms"`
	SplitStatements *bool   `mapstructure:"splitStatements"`
	StripComments   *bool   `mapstructure:"stripComments"`
	EndDelimiter    *string `mapstructure:"endDelimiter"`
}

// Name implements Change.
func (c *SQL) Name() string { return "sql" }

// Validate implements Change.
func (c *SQL) Validate(_ validator.Capability) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("sql", c.SQL)
	if c.SQL != nil && strings.TrimSpace(*c.SQL) == "" {
		r.AddError("sql must not be blank")
	}
	if c.DBMS == nil {
		r.AddWarning("raw sql is not checked against the target database; set dbms to restrict it")
	}
	c.warnUnknown(c.Name(), r)
	return r
}
