// Package database describes the database engines changelogs are validated
// against.
//
// A [*Database] is a validator.Capability: its short name appears in
// "<field> is not allowed on <name>" messages. Engines form a shallow
// hierarchy where a variant points at the engine it derives from
// (cockroachdb at postgresql, mariadb at mysql), and a [Selector] built
// with [Is] matches an engine together with every more specific variant:
//
//	db, err := database.Lookup("mariadb")
//	if err != nil {
//		return err
//	}
//	database.Is("mysql").Matches(db) // true
//	database.Is("mariadb").Matches(db) // true
//	database.Is("postgresql").Matches(db) // false
//
// Names passed to [Lookup] and [Is] are case-insensitive and accept common
// aliases such as "postgres" and "sqlserver".
package database
