// Package changelog parses changelog files and validates them against a
// target database.
//
// A changelog is a document whose databaseChangeLog key lists changeSet
// and include entries. YAML, JSON and TOML files are accepted; the format
// is chosen by file extension. Includes are inlined at their position so
// the resulting [ChangeLog] holds every change set in execution order.
//
// [Validator] checks change sets concurrently. Each change result is merged
// unscoped into its change set's result, and each change set result is
// merged into the changelog result scoped by the change set's identity:
//
//	tableName is required, db/changelog.yaml::1::alice
package changelog
