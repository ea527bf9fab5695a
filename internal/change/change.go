package change

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/validator"
)

// Change is a single schema change inside a change set.
type Change interface {
	// Name returns the change type as written in changelogs, e.g. "createTable".
	Name() string

	// Validate checks the change against target and returns a fresh result.
	// A nil target means the database is unknown.
	Validate(target validator.Capability) *validator.Result
}

// attributes records decoded keys that no change field consumed.
type attributes struct {
	unknown []string
}

func (a *attributes) setUnknown(keys []string) {
	a.unknown = keys
}

// warnUnknown adds one warning per ignored attribute.
func (a *attributes) warnUnknown(name string, r *validator.Result) {
	for _, key := range a.unknown {
		r.AddWarning(fmt.Sprintf("%s attribute %q is not recognized and will be ignored", name, key))
	}
}

type unknownSetter interface {
	setUnknown(keys []string)
}

var factories = map[string]func() Change{
	"createTable":             func() Change { return &CreateTable{} },
	"dropTable":               func() Change { return &DropTable{} },
	"addColumn":               func() Change { return &AddColumn{} },
	"dropColumn":              func() Change { return &DropColumn{} },
	"renameColumn":            func() Change { return &RenameColumn{} },
	"createIndex":             func() Change { return &CreateIndex{} },
	"addPrimaryKey":           func() Change { return &AddPrimaryKey{} },
	"addForeignKeyConstraint": func() Change { return &AddForeignKeyConstraint{} },
	"addAutoIncrement":        func() Change { return &AddAutoIncrement{} },
	"createSequence":          func() Change { return &CreateSequence{} },
	"sql":                     func() Change { return &SQL{} },
}

// Names returns the supported change types, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode builds the change named name from its decoded attributes.
//
// raw is the attribute map produced by the YAML, JSON or TOML decoder.
// Scalars are converted leniently (an id of 1 decodes into a string
// field). Attributes that no field consumes are kept and reported as
// warnings by Validate.
func Decode(name string, raw any) (Change, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownChange, "%q", name)
	}
	c := factory()
	if raw == nil {
		return c, nil
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           c,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}

	if s, ok := c.(unknownSetter); ok && len(md.Unused) > 0 {
		unused := append([]string(nil), md.Unused...)
		sort.Strings(unused)
		s.setUnknown(unused)
	}
	return c, nil
}

// targets reports whether target is, or descends from, any of names.
func targets(target validator.Capability, names ...string) bool {
	for _, n := range names {
		if database.Is(n).Matches(target) {
			return true
		}
	}
	return false
}
