package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/thoreinstein/changelint/internal/errors"
)

// Severity represents the impact of a validation message. A message's
// severity follows from the list that holds it and is written to JSON
// reports.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind tags a message with the check that produced it.
type Kind int

const (
	// KindGeneric is a free-form message added with AddError or AddWarning.
	KindGeneric Kind = iota
	// KindRequiredFieldMissing is produced when a required field is absent.
	KindRequiredFieldMissing
	// KindFieldEmpty is produced when a required collection field has no elements.
	KindFieldEmpty
	// KindFieldDisallowed is produced when a field is set on a target that does not support it.
	KindFieldDisallowed
)

var kindNames = map[Kind]string{
	KindGeneric:              "generic",
	KindRequiredFieldMissing: "required",
	KindFieldEmpty:           "empty",
	KindFieldDisallowed:      "disallowed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return errors.Newf("unknown message kind %q", string(text))
}

// Message is a single tagged validation message.
//
// The displayed text is derived from Kind, never parsed back out of it:
// a generic message that happens to read "x is required" is still generic.
type Message struct {
	// Kind identifies the check that produced the message.
	Kind Kind
	// Field is the offending field name. Empty for generic messages.
	Field string
	// Target is the short name of the capability a field was disallowed on.
	Target string
	// Text is the caller-supplied text of a generic message.
	Text string
	// Context holds the labels attached by scoped merges, innermost first.
	Context []string
}

// base renders the message without any context labels.
func (m Message) base() string {
	switch m.Kind {
	case KindRequiredFieldMissing:
		return m.Field + " is required"
	case KindFieldEmpty:
		return m.Field + " is empty"
	case KindFieldDisallowed:
		return m.Field + " is not allowed on " + m.Target
	default:
		return m.Text
	}
}

// String renders the message followed by ", <label>" for each context label.
func (m Message) String() string {
	if len(m.Context) == 0 {
		return m.base()
	}
	var sb strings.Builder
	sb.WriteString(m.base())
	for _, label := range m.Context {
		sb.WriteString(", ")
		sb.WriteString(label)
	}
	return sb.String()
}

// withContext returns a copy of m with label appended to its context.
// The copy never shares a backing array with m.
func (m Message) withContext(label string) Message {
	ctx := make([]string, len(m.Context), len(m.Context)+1)
	copy(ctx, m.Context)
	m.Context = append(ctx, label)
	return m
}

// Sized is implemented by collection-like values that can report their length.
// CheckRequiredField treats a Sized value with Len() == 0 as empty.
type Sized interface {
	Len() int
}

// Result accumulates the errors and warnings of one validation scope.
//
// The zero value is ready to use and renders in RenderLegacy mode.
// Messages are append-only: nothing removes or reorders them.
// A Result is not safe for concurrent use; each scope owns its own
// instance and merges it into a parent when done.
type Result struct {
	errors   []Message
	warnings []Message
	mode     RenderMode
}

// Option configures a Result.
type Option func(*Result)

// WithRenderMode sets the mode used by String.
func WithRenderMode(mode RenderMode) Option {
	return func(r *Result) {
		r.mode = mode
	}
}

// New creates an empty Result with the given options.
func New(opts ...Option) *Result {
	r := &Result{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the render mode used by String.
func (r *Result) Mode() RenderMode {
	if r == nil {
		return RenderLegacy
	}
	return r.mode
}

// HasErrors returns true if the result holds at least one error.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.errors) > 0
}

// HasWarnings returns true if the result holds at least one warning.
func (r *Result) HasWarnings() bool {
	return r != nil && len(r.warnings) > 0
}

// AddError appends a generic error message and returns the receiver.
func (r *Result) AddError(message string) *Result {
	r.errors = append(r.errors, Message{Kind: KindGeneric, Text: message})
	return r
}

// AddWarning appends a generic warning message and returns the receiver.
func (r *Result) AddWarning(message string) *Result {
	r.warnings = append(r.warnings, Message{Kind: KindGeneric, Text: message})
	return r
}

// CheckRequiredField records an error when value is absent or an empty collection.
//
// Absent means a nil interface or a nil pointer, map, slice, interface,
// func or chan and yields "<field> is required". A present value that
// implements Sized, or is a slice, array or map, with length zero yields
// "<field> is empty". Scalars, including the empty string, are never
// checked for emptiness.
func (r *Result) CheckRequiredField(field string, value any) {
	if isAbsent(value) {
		r.errors = append(r.errors, Message{Kind: KindRequiredFieldMissing, Field: field})
		return
	}
	if n, ok := lengthOf(value); ok && n == 0 {
		r.errors = append(r.errors, Message{Kind: KindFieldEmpty, Field: field})
	}
}

// CheckDisallowedField records an error when value is present and the field
// is disallowed on target.
//
// An empty disallowed list means the field is disallowed everywhere;
// otherwise it is disallowed when target matches any selector. Prefer
// CheckDisallowedFieldPolicy when the intent should be explicit.
func (r *Result) CheckDisallowedField(field string, value any, target Capability, disallowed ...Selector) {
	r.CheckDisallowedFieldPolicy(field, value, target, PolicyFor(disallowed...))
}

// CheckDisallowedFieldPolicy records "<field> is not allowed on <target>"
// when value is present and policy disallows target. An absent target is
// rendered as "unknown".
func (r *Result) CheckDisallowedFieldPolicy(field string, value any, target Capability, policy Policy) {
	if isAbsent(value) || !policy.Disallows(target) {
		return
	}
	r.errors = append(r.errors, Message{
		Kind:   KindFieldDisallowed,
		Field:  field,
		Target: capabilityName(target),
	})
}

// AddAll appends other's errors and warnings, in order, after the
// receiver's own. A nil other is a no-op. other is never modified.
func (r *Result) AddAll(other *Result) *Result {
	if other == nil {
		return r
	}
	r.errors = append(r.errors, other.errors...)
	r.warnings = append(r.warnings, other.warnings...)
	return r
}

// AddAllScoped appends other's messages, in order, each annotated with
// label so it renders as "<message>, <label>". A nil other is a no-op and a
// nil label is rendered as "unknown".
func (r *Result) AddAllScoped(other *Result, label fmt.Stringer) *Result {
	if other == nil {
		return r
	}
	ctx := labelString(label)
	for _, m := range other.errors {
		r.errors = append(r.errors, m.withContext(ctx))
	}
	for _, m := range other.warnings {
		r.warnings = append(r.warnings, m.withContext(ctx))
	}
	return r
}

// Errors returns the rendered error messages in insertion order.
func (r *Result) Errors() []string {
	if r == nil {
		return nil
	}
	return renderAll(r.errors, nil)
}

// Warnings returns the rendered warning messages in insertion order.
func (r *Result) Warnings() []string {
	if r == nil {
		return nil
	}
	return renderAll(r.warnings, nil)
}

// ErrorMessages returns a copy of the structured error messages.
func (r *Result) ErrorMessages() []Message {
	if r == nil {
		return nil
	}
	return cloneMessages(r.errors)
}

// WarningMessages returns a copy of the structured warning messages.
func (r *Result) WarningMessages() []Message {
	if r == nil {
		return nil
	}
	return cloneMessages(r.warnings)
}

// RequiredErrorMessages returns the rendered errors produced by a missing
// required field, in insertion order.
func (r *Result) RequiredErrorMessages() []string {
	if r == nil {
		return nil
	}
	return renderAll(r.errors, func(m Message) bool { return m.Kind == KindRequiredFieldMissing })
}

// UnsupportedErrorMessages returns the rendered errors produced by a
// disallowed field, in insertion order.
func (r *Result) UnsupportedErrorMessages() []string {
	if r == nil {
		return nil
	}
	return renderAll(r.errors, func(m Message) bool { return m.Kind == KindFieldDisallowed })
}

// Err returns nil when the result has no errors, otherwise an error wrapping
// errors.ErrValidationFailed whose text lists every error message.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return errors.Wrap(errors.ErrValidationFailed, strings.Join(r.Errors(), "; "))
}

func renderAll(msgs []Message, keep func(Message) bool) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if keep == nil || keep(m) {
			out = append(out, m.String())
		}
	}
	return out
}

func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		m.Context = append([]string(nil), m.Context...)
		out[i] = m
	}
	return out
}

// isAbsent reports whether v is nil or a typed nil.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// lengthOf returns the length of collection-like values.
// Strings are not collection-like.
func lengthOf(v any) (int, bool) {
	if s, ok := v.(Sized); ok {
		return s.Len(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
