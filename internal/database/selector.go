package database

import (
	"strings"

	"github.com/thoreinstein/changelint/internal/validator"
)

// Selector matches an engine and every more specific engine descending from it.
type Selector struct {
	name string
}

var _ validator.Selector = Selector{}

// Is returns a selector for the engine named name. Is("mysql") matches
// mysql and mariadb; Is("mariadb") matches only mariadb.
func Is(name string) Selector {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return Selector{name: name}
}

// Matches reports whether c is the selected engine or one of its descendants.
// Capabilities that are not a *Database match by short name only.
func (s Selector) Matches(c validator.Capability) bool {
	switch v := c.(type) {
	case nil:
		return false
	case *Database:
		return v != nil && v.IsA(s.name)
	default:
		return strings.EqualFold(c.ShortName(), s.name)
	}
}

// String returns the selected engine name.
func (s Selector) String() string {
	return s.name
}

// Any returns selectors for each of names, for use with the variadic
// validator.Result.CheckDisallowedField.
func Any(names ...string) []validator.Selector {
	out := make([]validator.Selector, len(names))
	for i, n := range names {
		out[i] = Is(n)
	}
	return out
}

// Except returns a selector matching every engine that none of names selects.
func Except(names ...string) validator.Selector {
	excluded := Any(names...)
	return validator.SelectorFunc(func(c validator.Capability) bool {
		for _, s := range excluded {
			if s.Matches(c) {
				return false
			}
		}
		return true
	})
}
