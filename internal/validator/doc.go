// Package validator provides the validation result accumulator used by
// changelint's change, change set and changelog checks.
//
// A [Result] collects ordered error and warning messages for one
// validation scope. Scopes nest: a change's result is merged into its
// change set's result, which is merged, annotated with the change set's
// identity, into the changelog's result.
//
// # Core Concepts
//
//   - [Message]: a tagged message. Its [Kind] (generic, required, empty,
//     disallowed) drives both the rendered text and classification.
//   - [Result]: an append-only accumulator with fluent AddError and
//     AddWarning, field checks, and two merge forms.
//   - [Capability] and [Selector]: the target environment and the sets
//     used to decide where a field is disallowed.
//   - [Policy]: an explicit AlwaysDisallowed or DisallowedOn decision.
//   - [Reporter]: text, JSON or single-line output.
//
// # Basic Usage
//
//	result := validator.New()
//	result.CheckRequiredField("tableName", change.TableName)
//	result.CheckDisallowedField("tablespace", change.Tablespace, db, database.Is("sqlite"))
//
//	parent.AddAllScoped(result, changeSet)
//	if parent.HasErrors() {
//		fmt.Println(parent)
//	}
//
// # Rendering
//
// [Result.String] renders "No errors", or the errors joined with "; ".
// In [RenderLegacy] mode any warnings replace the whole string with
// "WARNING: "-prefixed warnings; [RenderCombined] appends them instead.
// Callers that need both should read [Result.Errors] and
// [Result.Warnings] directly.
//
// # Concurrency
//
// A Result is not safe for concurrent use. Validate independent scopes
// into separate results and merge them from a single goroutine.
package validator
