package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReporter_Report(t *testing.T) {
	color.NoColor = true

	result := &Result{}
	result.CheckRequiredField("tableName", nil)
	result.AddWarning("no rollback defined")
	result = New().AddAllScoped(result, label("changelog.yaml::1::alice"))

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "1 error(s)") {
			t.Error("output missing error summary")
		}
		if !strings.Contains(output, "tableName is required") {
			t.Error("output missing error details")
		}
		if !strings.Contains(output, "(changelog.yaml::1::alice)") {
			t.Error("output missing context")
		}
		if !strings.Contains(output, "no rollback defined") {
			t.Error("output missing warning")
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatJSON)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}

		if len(decoded.Errors()) != 1 {
			t.Errorf("decoded errors count = %d, want 1", len(decoded.Errors()))
		}
		if got := decoded.ErrorMessages()[0].Field; got != "tableName" {
			t.Errorf("first error field = %q, want tableName", got)
		}
	})

	t.Run("line format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatLine)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		want := "WARNING: no rollback defined, changelog.yaml::1::alice\n"
		if buf.String() != want {
			t.Errorf("line output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("warnings only text", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(New().AddWarning("w")); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed with 1 warning(s)") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed") {
			t.Error("output missing success message")
		}
	})

	t.Run("nil result", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(nil); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "TEXT", want: FormatText},
		{in: "json", want: FormatJSON},
		{in: "line", want: FormatLine},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
