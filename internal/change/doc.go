// Package change implements the schema change types that make up a change
// set, and the rules each one is validated against.
//
// Changes are decoded from the attribute maps produced by the changelog
// parsers with [Decode]. Every [Change] validates into its own
// validator.Result, using CheckRequiredField for mandatory attributes and
// CheckDisallowedField for attributes a target database does not support.
// Attributes that no field recognizes are reported as warnings.
package change
