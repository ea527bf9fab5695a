package database

import (
	"sort"
	"strings"

	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/validator"
)

// Short names of the database engines changelint knows about.
const (
	PostgreSQL  = "postgresql"
	CockroachDB = "cockroachdb"
	MySQL       = "mysql"
	MariaDB     = "mariadb"
	SQLite      = "sqlite"
	Oracle      = "oracle"
	MSSQL       = "mssql"
	H2          = "h2"
	HSQLDB      = "hsqldb"
	Derby       = "derby"
	DB2         = "db2"
	Firebird    = "firebird"
	Sybase      = "sybase"
	Informix    = "informix"
	Snowflake   = "snowflake"
)

// Database describes a database engine. It implements validator.Capability.
type Database struct {
	// Short is the identifier used in changelogs and messages.
	Short string `json:"name" yaml:"name"`
	// DisplayName is the human-readable product name.
	DisplayName string `json:"display_name" yaml:"display_name"`
	// Parent is the engine this one is a more specific variant of, if any.
	Parent *Database `json:"-" yaml:"-"`
}

var _ validator.Capability = (*Database)(nil)

// ShortName returns the engine's short name.
func (d *Database) ShortName() string {
	return d.Short
}

// String implements fmt.Stringer.
func (d *Database) String() string {
	return d.Short
}

// IsA reports whether d is the engine named name or descends from it.
func (d *Database) IsA(name string) bool {
	name = strings.ToLower(name)
	for cur := d; cur != nil; cur = cur.Parent {
		if cur.Short == name {
			return true
		}
	}
	return false
}

// Lineage returns the short names from d up to its root ancestor.
func (d *Database) Lineage() []string {
	var out []string
	for cur := d; cur != nil; cur = cur.Parent {
		out = append(out, cur.Short)
	}
	return out
}

var (
	postgresql = &Database{Short: PostgreSQL, DisplayName: "PostgreSQL"}
	mysql      = &Database{Short: MySQL, DisplayName: "MySQL"}

	registry = map[string]*Database{
		PostgreSQL:  postgresql,
		CockroachDB: {Short: CockroachDB, DisplayName: "CockroachDB", Parent: postgresql},
		MySQL:       mysql,
		MariaDB:     {Short: MariaDB, DisplayName: "MariaDB", Parent: mysql},
		SQLite:      {Short: SQLite, DisplayName: "SQLite"},
		Oracle:      {Short: Oracle, DisplayName: "Oracle Database"},
		MSSQL:       {Short: MSSQL, DisplayName: "Microsoft SQL Server"},
		H2:          {Short: H2, DisplayName: "H2"},
		HSQLDB:      {Short: HSQLDB, DisplayName: "HyperSQL"},
		Derby:       {Short: Derby, DisplayName: "Apache Derby"},
		DB2:         {Short: DB2, DisplayName: "IBM Db2"},
		Firebird:    {Short: Firebird, DisplayName: "Firebird"},
		Sybase:      {Short: Sybase, DisplayName: "SAP ASE"},
		Informix:    {Short: Informix, DisplayName: "IBM Informix"},
		Snowflake:   {Short: Snowflake, DisplayName: "Snowflake"},
	}

	aliases = map[string]string{
		"postgres":    PostgreSQL,
		"pg":          PostgreSQL,
		"cockroach":   CockroachDB,
		"crdb":        CockroachDB,
		"sqlite3":     SQLite,
		"sqlserver":   MSSQL,
		"mssqlserver": MSSQL,
		"maria":       MariaDB,
	}
)

// Lookup returns the engine registered under name or one of its aliases.
// Names are matched case-insensitively.
func Lookup(name string) (*Database, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	db, ok := registry[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownDatabase, "%q", name)
	}
	return db, nil
}

// Known reports whether name resolves to a registered engine.
func Known(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// All returns every registered engine sorted by short name.
func All() []*Database {
	out := make([]*Database, 0, len(registry))
	for _, db := range registry {
		out = append(out, db)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Short < out[j].Short })
	return out
}

// Names returns the short names of every registered engine, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, db := range all {
		names[i] = db.Short
	}
	return names
}

// AliasesOf returns the alternative names accepted for the engine short, sorted.
func AliasesOf(short string) []string {
	var out []string
	for alias, canonical := range aliases {
		if canonical == short {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
