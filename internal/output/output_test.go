package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"  json:"name"`
	Count int    `yaml:"count" json:"count"`
}

func TestFprintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintYAML(&buf, sample{Name: "button_save", Count: 2}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "name: button_save") {
		t.Errorf("missing name field: %q", got)
	}
	if !strings.Contains(got, "count: 2") {
		t.Errorf("missing count field: %q", got)
	}
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sample{Name: "a&b", Count: 1}, false); err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(buf.String())
	if got != `{"name":"a&b","count":1}` {
		t.Errorf("compact JSON = %q", got)
	}
	// HTML escaping is off: "&" stays literal.
	if strings.Contains(got, `&`) {
		t.Error("ampersand should not be escaped")
	}
}

func TestFprintJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sample{Name: "x"}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("pretty JSON should be indented: %q", buf.String())
	}
}

func TestFprint_FormatSwitch(t *testing.T) {
	orig := OutputFormat
	defer func() { OutputFormat = orig }()

	OutputFormat = FormatJSON
	var buf bytes.Buffer
	if err := Fprint(&buf, sample{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	OutputFormat = Format("csv")
	if err := Fprint(&buf, sample{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
