package validator

import "fmt"

// Capability describes the environment a validation runs against, such as
// a database engine.
type Capability interface {
	// ShortName is the name used in "is not allowed on <name>" messages.
	ShortName() string
}

// Selector tests whether a capability falls within a set, typically "this
// engine or any more specific one".
type Selector interface {
	Matches(c Capability) bool
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(c Capability) bool

// Matches calls f(c).
func (f SelectorFunc) Matches(c Capability) bool {
	return f(c)
}

// Policy decides on which capabilities a field is disallowed.
type Policy struct {
	always    bool
	selectors []Selector
}

// AlwaysDisallowed returns a policy that disallows the field on every target,
// including an unknown one.
func AlwaysDisallowed() Policy {
	return Policy{always: true}
}

// DisallowedOn returns a policy that disallows the field on targets matching
// any of selectors. With no selectors the field is allowed everywhere.
func DisallowedOn(selectors ...Selector) Policy {
	return Policy{selectors: append([]Selector(nil), selectors...)}
}

// PolicyFor converts the varargs convention used by CheckDisallowedField:
// an empty list means AlwaysDisallowed, anything else DisallowedOn.
func PolicyFor(selectors ...Selector) Policy {
	if len(selectors) == 0 {
		return AlwaysDisallowed()
	}
	return DisallowedOn(selectors...)
}

// Disallows reports whether the policy disallows target. An absent target
// never matches a selector.
func (p Policy) Disallows(target Capability) bool {
	if p.always {
		return true
	}
	if isAbsent(target) {
		return false
	}
	for _, s := range p.selectors {
		if s != nil && s.Matches(target) {
			return true
		}
	}
	return false
}

// String describes the policy for logs and debugging.
func (p Policy) String() string {
	if p.always {
		return "always disallowed"
	}
	return fmt.Sprintf("disallowed on %d selector(s)", len(p.selectors))
}

// IsUnknown reports whether c is nil, including a typed nil pointer.
// An unknown target renders as "unknown" and matches no selector.
func IsUnknown(c Capability) bool {
	return isAbsent(c)
}

func capabilityName(c Capability) string {
	if isAbsent(c) {
		return "unknown"
	}
	return c.ShortName()
}

func labelString(label fmt.Stringer) string {
	if isAbsent(label) {
		return "unknown"
	}
	return label.String()
}
