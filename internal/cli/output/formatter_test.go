package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		wide   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{FormatTable, true},
		{"unknown", false}, // default to table
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, tt.wide)
			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Errorf("got %T, want *JSONFormatter", f)
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Errorf("got %T, want *YAMLFormatter", f)
				}
			default:
				tf, ok := f.(*TableFormatter)
				if !ok {
					t.Fatalf("got %T, want *TableFormatter", f)
				}
				if tf.Wide != tt.wide {
					t.Errorf("Wide = %v, want %v", tf.Wide, tt.wide)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
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

func TestJSONFormatter_Format(t *testing.T) {
	f := &JSONFormatter{}

	t.Run("uses json field names", func(t *testing.T) {
		var buf bytes.Buffer
		course := domain.Course{ID: "7", Name: "Lập trình Scratch", IsActive: true}
		if err := f.Format(&buf, course); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{`"id": "7"`, `"name": "Lập trình Scratch"`, `"is_active": true`} {
			if !strings.Contains(output, want) {
				t.Errorf("Format() output missing %s:\n%s", want, output)
			}
		}
	})

	t.Run("does not escape html", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, map[string]string{"link": "https://x.vn/?a=1&b=2"}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(buf.String(), "a=1&b=2") {
			t.Errorf("ampersand should not be escaped: %s", buf.String())
		}
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "null" {
			t.Errorf("Format(nil) = %q, want null", got)
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	t.Run("struct keeps field order and names", func(t *testing.T) {
		var buf bytes.Buffer
		course := domain.Course{ID: "7", Name: "Robotics", IsActive: true}
		if err := f.Format(&buf, course); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		want := "id: \"7\"\nname: Robotics\nis_active: true\n"
		if buf.String() != want {
			t.Errorf("Format() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("slice is a block sequence", func(t *testing.T) {
		var buf bytes.Buffer
		data := []domain.Facility{{ID: "1", Name: "Phòng Lab"}, {ID: "2", Name: "Thư viện"}}
		if err := f.Format(&buf, data); err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "{") || strings.Contains(output, "[") {
			t.Errorf("output should use block style:\n%s", output)
		}
		if strings.Count(output, "- id:") != 2 {
			t.Errorf("output should list two items:\n%s", output)
		}
	})
}
