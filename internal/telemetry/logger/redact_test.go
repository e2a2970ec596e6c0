package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer) Logger {
	t.Helper()
	l, err := New(Config{Level: "debug", Format: "json", Output: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	return entry
}

func TestRedactSensitive_BearerValue(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("request", "header", "Bearer jbzJUcEIBLQtMrzyOv0XLxDGNdviXqmal4v4SsFzUIAo")

	entry := decodeEntry(t, &buf)
	if got := entry["header"]; got != "Bearer jbz...IAo" {
		t.Errorf("header = %v, want masked bearer value", got)
	}
}

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"token", redactedValue},
		{"access_token", redactedValue},
		{"Authorization", redactedValue},
		{"client_secret", redactedValue},
		{"token_fp", "plain-value"},
		{"path", "plain-value"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var buf bytes.Buffer
			l := newJSONLogger(t, &buf)

			l.Info("test", tt.key, "plain-value")

			entry := decodeEntry(t, &buf)
			if got := entry[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRedactSensitive_EmptyValue(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("no token", "token", "")

	entry := decodeEntry(t, &buf)
	if got := entry["token"]; got != "" {
		t.Errorf("empty token should stay empty, got %v", got)
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("nested", slog.Group("auth", "token", "plain-value", "source", "env"))

	entry := decodeEntry(t, &buf)
	group, ok := entry["auth"].(map[string]any)
	if !ok {
		t.Fatalf("auth group missing: %v", entry)
	}
	if group["token"] != redactedValue {
		t.Errorf("auth.token = %v, want %q", group["token"], redactedValue)
	}
	if group["source"] != "env" {
		t.Errorf("auth.source = %v, want env", group["source"])
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "***"},
		{"abcdefghijklmnop", "abc...nop"},
		{"Bearer abcdefghijklmnop", "Bearer abc...nop"},
		{"Bearer abc", "Bearer ***"},
	}

	for _, tt := range tests {
		if got := RedactString(tt.in); got != tt.want {
			t.Errorf("RedactString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{"token", "TOKEN", "bearer_token", "password", "api_key", "authorization"}
	for _, k := range sensitive {
		if !IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = false, want true", k)
		}
	}

	safe := []string{"token_fp", "token_source", "has_token", "path", "status", "request_id"}
	for _, k := range safe {
		if IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = true, want false", k)
		}
	}
}
