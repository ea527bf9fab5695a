package changelog

import (
	"strings"

	"github.com/thoreinstein/changelint/internal/change"
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/validator"
)

// ChangeLog is a parsed changelog with its includes flattened in order.
type ChangeLog struct {
	// Path is the file the changelog was read from.
	Path string
	// ChangeSets lists every change set, included files inlined at the
	// position of their include entry.
	ChangeSets []*ChangeSet
	// Files lists every file read, the root first.
	Files []string
}

// ChangeSet is one unit of change within a changelog.
//
// ID, Author and Changes are nil when absent from the file so validation
// can tell a missing attribute from an empty one.
type ChangeSet struct {
	ID      *string
	Author  *string
	Comment *string
	// Path is the file that declared the change set.
	Path string
	// DBMS restricts the change set to particular engines. Entries may be
	// negated with a leading "!"; "all" and "none" are also recognized.
	DBMS    []string
	Changes []change.Change
}

// String returns "<path>::<id>::<author>", the change set's identity. It
// labels every message merged from the change set's validation.
func (cs *ChangeSet) String() string {
	return cs.Path + "::" + deref(cs.ID) + "::" + deref(cs.Author)
}

// AppliesTo reports whether the change set should run on target.
// Change sets without a dbms list, and unknown targets, always apply.
// Otherwise "none" and any negated entry matching target exclude it, "all"
// or a list of only negations includes it, and a positive entry must
// match. Entry order does not matter.
func (cs *ChangeSet) AppliesTo(target validator.Capability) bool {
	if len(cs.DBMS) == 0 || validator.IsUnknown(target) {
		return true
	}

	var hasAll, hasNone, hasPositive, negated, matched bool
	for _, entry := range cs.DBMS {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "all":
			hasAll = true
		case entry == "none":
			hasNone = true
		case strings.HasPrefix(entry, "!"):
			if database.Is(strings.TrimPrefix(entry, "!")).Matches(target) {
				negated = true
			}
		default:
			hasPositive = true
			if database.Is(entry).Matches(target) {
				matched = true
			}
		}
	}

	switch {
	case hasNone, negated:
		return false
	case hasAll, !hasPositive:
		return true
	default:
		return matched
	}
}

// unknownDBMS returns dbms entries that name no registered engine.
func (cs *ChangeSet) unknownDBMS() []string {
	var out []string
	for _, entry := range cs.DBMS {
		name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(entry)), "!")
		if name == "all" || name == "none" {
			continue
		}
		if !database.Known(name) {
			out = append(out, entry)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
