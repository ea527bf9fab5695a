package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/changelint/internal/errors"
)

type engine struct {
	name   string
	parent *engine
}

func (e *engine) ShortName() string { return e.name }

// is matches e and any engine descending from it.
func is(e *engine) Selector {
	return SelectorFunc(func(c Capability) bool {
		got, ok := c.(*engine)
		for ok && got != nil {
			if got == e {
				return true
			}
			got = got.parent
		}
		return false
	})
}

type label string

func (l label) String() string { return string(l) }

type bag struct{ n int }

func (b bag) Len() int { return b.n }

var (
	mysql   = &engine{name: "mysql"}
	mariadb = &engine{name: "mariadb", parent: mysql}
	sqlite  = &engine{name: "sqlite"}
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_Text(t *testing.T) {
	for _, k := range []Kind{KindGeneric, KindRequiredFieldMissing, KindFieldEmpty, KindFieldDisallowed} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestResult_Fresh(t *testing.T) {
	r := New()
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Empty(t, r.Errors())
	assert.Empty(t, r.Warnings())
	assert.NoError(t, r.Err())

	var zero Result
	assert.False(t, zero.HasErrors())
	assert.Equal(t, "No errors", zero.String())
}

func TestResult_AddError(t *testing.T) {
	r := &Result{}

	got := r.AddError("first").AddError("second")
	assert.Same(t, r, got, "AddError should return the receiver")
	assert.True(t, r.HasErrors())
	assert.False(t, r.HasWarnings(), "errors do not count as warnings")
	assert.Equal(t, []string{"first", "second"}, r.Errors())

	r.AddError("third")
	errs := r.Errors()
	assert.Equal(t, "third", errs[len(errs)-1])
	assert.Equal(t, []string{"first", "second", "third"}, errs)
}

func TestResult_AddWarning(t *testing.T) {
	r := &Result{}

	assert.Same(t, r, r.AddWarning("w1"))
	assert.True(t, r.HasWarnings())
	assert.False(t, r.HasErrors(), "warnings alone never count as errors")
	assert.Equal(t, []string{"w1"}, r.Warnings())
}

func TestResult_CheckRequiredField(t *testing.T) {
	var nilSlice []string
	var nilMap map[string]int
	var nilPtr *string
	empty := ""

	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "nil", value: nil, want: []string{"x is required"}},
		{name: "nil slice", value: nilSlice, want: []string{"x is required"}},
		{name: "nil map", value: nilMap, want: []string{"x is required"}},
		{name: "nil pointer", value: nilPtr, want: []string{"x is required"}},
		{name: "empty slice", value: []string{}, want: []string{"x is empty"}},
		{name: "empty map", value: map[string]int{}, want: []string{"x is empty"}},
		{name: "zero length array", value: [0]int{}, want: []string{"x is empty"}},
		{name: "empty sized", value: bag{}, want: []string{"x is empty"}},
		{name: "non-empty slice", value: []string{"a"}, want: []string{}},
		{name: "non-empty array", value: [2]int{1, 2}, want: []string{}},
		{name: "non-empty sized", value: bag{n: 3}, want: []string{}},
		{name: "empty string is present", value: "", want: []string{}},
		{name: "pointer to empty string is present", value: &empty, want: []string{}},
		{name: "zero int is present", value: 0, want: []string{}},
		{name: "false is present", value: false, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.CheckRequiredField("x", tt.value)
			if diff := cmp.Diff(tt.want, r.Errors()); diff != "" {
				t.Errorf("Errors() mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, r.HasWarnings())
		})
	}
}

func TestResult_CheckDisallowedField(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		target     Capability
		disallowed []Selector
		want       []string
	}{
		{
			name:   "empty list disallows everywhere",
			value:  "v",
			target: sqlite,
			want:   []string{"x is not allowed on sqlite"},
		},
		{
			name:   "empty list with absent value",
			value:  nil,
			target: sqlite,
			want:   []string{},
		},
		{
			name:       "selector not matching target",
			value:      "v",
			target:     sqlite,
			disallowed: []Selector{is(mysql)},
			want:       []string{},
		},
		{
			name:       "selector matching target",
			value:      "v",
			target:     mysql,
			disallowed: []Selector{is(mysql)},
			want:       []string{"x is not allowed on mysql"},
		},
		{
			name:       "selector matching more specific target",
			value:      true,
			target:     mariadb,
			disallowed: []Selector{is(sqlite), is(mysql)},
			want:       []string{"x is not allowed on mariadb"},
		},
		{
			name:   "absent target renders unknown",
			value:  "v",
			target: nil,
			want:   []string{"x is not allowed on unknown"},
		},
		{
			name:   "typed nil target renders unknown",
			value:  "v",
			target: (*engine)(nil),
			want:   []string{"x is not allowed on unknown"},
		},
		{
			name:       "absent target matches no selector",
			value:      "v",
			target:     nil,
			disallowed: []Selector{is(mysql)},
			want:       []string{},
		},
		{
			name:       "empty string value is present",
			value:      "",
			target:     mysql,
			disallowed: []Selector{is(mysql)},
			want:       []string{"x is not allowed on mysql"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.CheckDisallowedField("x", tt.value, tt.target, tt.disallowed...)
			if diff := cmp.Diff(tt.want, r.Errors()); diff != "" {
				t.Errorf("Errors() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResult_CheckDisallowedFieldPolicy(t *testing.T) {
	r := New()
	r.CheckDisallowedFieldPolicy("a", "v", sqlite, AlwaysDisallowed())
	r.CheckDisallowedFieldPolicy("b", "v", sqlite, DisallowedOn())
	r.CheckDisallowedFieldPolicy("c", "v", mariadb, DisallowedOn(is(mysql)))
	r.CheckDisallowedFieldPolicy("d", "v", sqlite, DisallowedOn(is(mysql)))

	assert.Equal(t, []string{
		"a is not allowed on sqlite",
		"c is not allowed on mariadb",
	}, r.Errors())
}

func TestPolicy(t *testing.T) {
	assert.True(t, PolicyFor().Disallows(nil))
	assert.True(t, PolicyFor().Disallows(sqlite))
	assert.False(t, PolicyFor(is(mysql)).Disallows(sqlite))
	assert.True(t, PolicyFor(is(mysql)).Disallows(mariadb))
	assert.False(t, DisallowedOn(nil).Disallows(mysql), "nil selectors are ignored")
	assert.Equal(t, "always disallowed", AlwaysDisallowed().String())
	assert.Equal(t, "disallowed on 2 selector(s)", DisallowedOn(is(mysql), is(sqlite)).String())
}

func TestResult_AddAll(t *testing.T) {
	t.Run("nil is a no-op", func(t *testing.T) {
		r := New().AddError("e")
		assert.Same(t, r, r.AddAll(nil))
		assert.Equal(t, []string{"e"}, r.Errors())
	})

	t.Run("fresh receiver mirrors other", func(t *testing.T) {
		other := New().AddError("e1").AddError("e2").AddWarning("w1")
		other.CheckRequiredField("name", nil)

		r := New().AddAll(other)
		assert.Equal(t, other.Errors(), r.Errors())
		assert.Equal(t, other.Warnings(), r.Warnings())
		assert.Equal(t, other.ErrorMessages(), r.ErrorMessages())
	})

	t.Run("appends after existing messages", func(t *testing.T) {
		r := New().AddError("mine").AddWarning("my warning")
		other := New().AddError("theirs").AddWarning("their warning")

		r.AddAll(other)
		assert.Equal(t, []string{"mine", "theirs"}, r.Errors())
		assert.Equal(t, []string{"my warning", "their warning"}, r.Warnings())
		assert.Equal(t, []string{"theirs"}, other.Errors(), "other must not be modified")
	})

	t.Run("later appends do not leak into other", func(t *testing.T) {
		other := New().AddError("a")
		r := New().AddAll(other)
		r.AddError("b")
		assert.Equal(t, []string{"a"}, other.Errors())
	})
}

func TestResult_AddAllScoped(t *testing.T) {
	other := New().AddError("e1").AddError("e2").AddWarning("w1")
	other.CheckRequiredField("id", nil)

	r := New().AddError("existing")
	got := r.AddAllScoped(other, label("db/changelog.yaml::1::bob"))
	assert.Same(t, r, got)

	assert.Equal(t, []string{
		"existing",
		"e1, db/changelog.yaml::1::bob",
		"e2, db/changelog.yaml::1::bob",
		"id is required, db/changelog.yaml::1::bob",
	}, r.Errors())
	assert.Equal(t, []string{"w1, db/changelog.yaml::1::bob"}, r.Warnings())

	assert.Equal(t, []string{"e1", "e2", "id is required"}, other.Errors(), "other must not be modified")

	t.Run("nested scopes accumulate innermost first", func(t *testing.T) {
		top := New().AddAllScoped(r, label("outer"))
		assert.Equal(t, "e1, db/changelog.yaml::1::bob, outer", top.Errors()[1])
		assert.Equal(t, "e1, db/changelog.yaml::1::bob", r.Errors()[1])
	})

	t.Run("nil other", func(t *testing.T) {
		r := New()
		r.AddAllScoped(nil, label("x"))
		assert.False(t, r.HasErrors())
	})

	t.Run("nil label", func(t *testing.T) {
		r := New().AddAllScoped(New().AddError("e"), nil)
		assert.Equal(t, []string{"e, unknown"}, r.Errors())
	})

	t.Run("classification survives scoping", func(t *testing.T) {
		assert.Equal(t, []string{"id is required, db/changelog.yaml::1::bob"}, r.RequiredErrorMessages())
	})
}

func TestResult_Classification(t *testing.T) {
	r := New()
	r.CheckRequiredField("tableName", nil)
	r.CheckDisallowedField("tablespace", "ts", sqlite)
	r.CheckRequiredField("columns", []string{})
	r.CheckRequiredField("author", nil)
	r.AddError("generic failure")
	r.CheckDisallowedField("clustered", true, mysql, is(mysql))

	assert.Equal(t, []string{"tableName is required", "author is required"}, r.RequiredErrorMessages())
	assert.Equal(t, []string{
		"tablespace is not allowed on sqlite",
		"clustered is not allowed on mysql",
	}, r.UnsupportedErrorMessages())

	t.Run("free-form text is not misclassified", func(t *testing.T) {
		r := New().AddError("sql is required by policy").AddError("index is not allowed on mysql")
		assert.Empty(t, r.RequiredErrorMessages())
		assert.Empty(t, r.UnsupportedErrorMessages())
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		req := r.RequiredErrorMessages()
		req[0] = "mutated"
		assert.Equal(t, "tableName is required", r.RequiredErrorMessages()[0])

		msgs := r.ErrorMessages()
		msgs[0].Field = "mutated"
		assert.Equal(t, "tableName", r.ErrorMessages()[0].Field)
	})
}

func TestResult_Err(t *testing.T) {
	r := New().AddWarning("only a warning")
	assert.NoError(t, r.Err())

	r.AddError("a").AddError("b")
	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidationFailed))
	assert.Equal(t, "a; b: validation failed", err.Error())
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Nil(t, r.Errors())
	assert.Nil(t, r.Warnings())
	assert.Nil(t, r.ErrorMessages())
	assert.Nil(t, r.WarningMessages())
	assert.Nil(t, r.RequiredErrorMessages())
	assert.Nil(t, r.UnsupportedErrorMessages())
	assert.NoError(t, r.Err())
	assert.Equal(t, RenderLegacy, r.Mode())
	assert.Equal(t, "No errors", r.String())
}

func TestIsUnknown(t *testing.T) {
	var typedNil *engine
	assert.True(t, IsUnknown(nil))
	assert.True(t, IsUnknown(typedNil))
	assert.False(t, IsUnknown(mysql))
}
