package validator

import (
	"encoding/json"
	"strings"

	"github.com/thoreinstein/changelint/internal/errors"
)

// RenderMode selects how Result.String combines errors and warnings.
type RenderMode int

const (
	// RenderLegacy renders the errors, or "No errors", and replaces the
	// whole string with the warnings when any exist. Error text is then
	// omitted even though HasErrors may report true.
	RenderLegacy RenderMode = iota
	// RenderCombined renders the errors followed by the warnings.
	RenderCombined
)

const (
	noErrors      = "No errors"
	separator     = "; "
	warningPrefix = "WARNING: "
)

func (m RenderMode) String() string {
	switch m {
	case RenderLegacy:
		return "legacy"
	case RenderCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// ParseRenderMode parses "legacy" or "combined". The empty string is legacy.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return RenderLegacy, nil
	case "combined":
		return RenderCombined, nil
	default:
		return RenderLegacy, errors.Newf("invalid render mode %q (want legacy or combined)", s)
	}
}

// String renders the result as a single line according to its render mode.
func (r *Result) String() string {
	if r == nil {
		return noErrors
	}

	errs := strings.Join(r.Errors(), separator)
	warns := r.renderWarnings()

	switch r.mode {
	case RenderCombined:
		switch {
		case errs != "" && warns != "":
			return errs + separator + warns
		case errs != "":
			return errs
		case warns != "":
			return warns
		default:
			return noErrors
		}
	default:
		s := noErrors
		if r.HasErrors() {
			s = errs
		}
		if r.HasWarnings() {
			s = warns
		}
		return s
	}
}

func (r *Result) renderWarnings() string {
	parts := make([]string, len(r.warnings))
	for i, m := range r.warnings {
		parts[i] = warningPrefix + m.String()
	}
	return strings.Join(parts, separator)
}

// jsonMessage is the wire form of a Message.
type jsonMessage struct {
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
	Field    string   `json:"field,omitempty"`
	Target   string   `json:"target,omitempty"`
	Text     string   `json:"text,omitempty"`
	Context  []string `json:"context,omitempty"`
	Message  string   `json:"message"`
}

type jsonResult struct {
	Valid    bool          `json:"valid"`
	Errors   []jsonMessage `json:"errors"`
	Warnings []jsonMessage `json:"warnings"`
}

func toJSONMessages(msgs []Message, severity Severity) []jsonMessage {
	out := make([]jsonMessage, len(msgs))
	for i, m := range msgs {
		out[i] = jsonMessage{
			Severity: severity,
			Kind:     m.Kind,
			Field:    m.Field,
			Target:   m.Target,
			Text:     m.Text,
			Context:  m.Context,
			Message:  m.String(),
		}
	}
	return out
}

func fromJSONMessages(msgs []jsonMessage) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = Message{
			Kind:    m.Kind,
			Field:   m.Field,
			Target:  m.Target,
			Text:    m.Text,
			Context: m.Context,
		}
	}
	return out
}

// MarshalJSON encodes the result with both structured and rendered messages.
// A nil result encodes as null.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return json.Marshal(jsonResult{
		Valid:    !r.HasErrors(),
		Errors:   toJSONMessages(r.errors, SeverityError),
		Warnings: toJSONMessages(r.warnings, SeverityWarning),
	})
}

// UnmarshalJSON restores a result encoded by MarshalJSON. The rendered
// "message" and "severity" fields are ignored; text is re-derived from the
// tags and severity from the list holding the message.
func (r *Result) UnmarshalJSON(data []byte) error {
	var jr jsonResult
	if err := json.Unmarshal(data, &jr); err != nil {
		return errors.Wrap(err, "decoding validation result")
	}
	r.errors = fromJSONMessages(jr.Errors)
	r.warnings = fromJSONMessages(jr.Warnings)
	return nil
}
