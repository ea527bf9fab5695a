package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/changelint/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable grouped text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatLine produces the single-line Result.String rendering.
	FormatLine Format = "line"
)

// ParseFormat validates a format name. The empty string is FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatLine:
		return f, nil
	default:
		return "", errors.Newf("invalid format %q (want text, json or line)", s)
	}
}

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	case FormatLine:
		_, err := fmt.Fprintln(r.out, result.String())
		return errors.Wrap(err, "writing report")
	default:
		return r.reportText(result)
	}
}

// reportJSON writes the result as JSON.
func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

// reportText writes the result as human-readable text.
func (r *Reporter) reportText(result *Result) error {
	if !result.HasErrors() && !result.HasWarnings() {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
		return nil
	}

	errs := result.ErrorMessages()
	warnings := result.WarningMessages()

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	if len(errs) > 0 {
		fmt.Fprintf(r.out, "Validation failed: %s\n\n", strings.Join(summary, ", "))
	} else {
		fmt.Fprintf(r.out, "Validation passed with %s\n\n", strings.Join(summary, ", "))
	}

	if len(errs) > 0 {
		fmt.Fprintln(r.out, "Errors:")
		for _, m := range errs {
			r.printMessage(m, color.FgRed)
		}
		fmt.Fprintln(r.out)
	}

	if len(warnings) > 0 {
		fmt.Fprintln(r.out, "Warnings:")
		for _, m := range warnings {
			r.printMessage(m, color.FgYellow)
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

func (r *Reporter) printMessage(m Message, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • field rest-of-message (context, ...)

	var sb strings.Builder
	sb.WriteString("  • ")

	base := m.base()
	if m.Field != "" && strings.HasPrefix(base, m.Field) {
		sb.WriteString(printer(m.Field))
		sb.WriteString(base[len(m.Field):])
	} else {
		sb.WriteString(base)
	}

	if len(m.Context) > 0 {
		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(m.Context, ", ")))
	}

	fmt.Fprintln(r.out, sb.String())
}
