package command

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
)

func TestShell_SharesOneSession(t *testing.T) {
	h := newHarness(t)
	h.server.handle("/app/auth/session", sessionOK)
	h.server.data("/app/courses", sampleCourses())
	h.stdin = "course list\ncourse list\nexit\n"

	if err := h.run("--token", "abc", "shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}

	if n := len(h.server.calls("/app/auth/session")); n != 1 {
		t.Errorf("session calls = %d, want 1", n)
	}
	courses := h.server.calls("/app/courses")
	if len(courses) != 2 {
		t.Fatalf("courses calls = %d, want 2", len(courses))
	}
	for _, c := range courses {
		if c.Auth != "Bearer abc" {
			t.Errorf("courses call Authorization = %q, want Bearer abc", c.Auth)
		}
	}
	if got := strings.Count(h.stdout.String(), "Robotics cơ bản"); got != 2 {
		t.Errorf("course table printed %d times, want 2", got)
	}
}

func TestShell_ErrorsDoNotEndSession(t *testing.T) {
	h := newHarness(t)
	h.server.data("/app/news", []map[string]any{{"id": 1, "title": "Khai giảng"}})
	h.stdin = "shell\ncourse list\nnews list\n"

	if err := h.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}

	stderr := h.stderr.String()
	if !strings.Contains(stderr, errNestedShell.Error()) {
		t.Errorf("stderr = %q, want nested shell rejected", stderr)
	}
	// course list fails with 404 and is reported inline.
	if !strings.Contains(stderr, "Không thể tải danh sách khóa học") {
		t.Errorf("stderr = %q, want the course failure", stderr)
	}
	if !strings.Contains(h.stdout.String(), "Khai giảng") {
		t.Errorf("stdout = %q, want news after the failures", h.stdout.String())
	}
}

// refusingPrompter says no and counts how often it was asked.
type refusingPrompter struct {
	mu    sync.Mutex
	calls int
}

func (p *refusingPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return false, nil
}

func TestShell_ConsentRefusalLastsTheSession(t *testing.T) {
	h := newHarness(t)
	prompter := &refusingPrompter{}
	h.prompter = prompter
	h.writeConfig("auth:\n  require_consent: true\n")
	h.server.handle("/app/auth/session", sessionOK)
	// auth session reconnects every time it runs.
	h.stdin = "auth session\nauth session\nauth session\nexit\n"

	if err := h.run("--token", "abc", "shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}

	if prompter.calls != 1 {
		t.Errorf("consent asked %d times, want 1", prompter.calls)
	}
	if n := len(h.server.calls("/app/auth/session")); n != 0 {
		t.Errorf("session calls = %d, want 0 after refusal", n)
	}
}

func TestShell_SavesHistory(t *testing.T) {
	h := newHarness(t)
	h.server.data("/app/news", []any{})
	h.stdin = "news list\nnews list\nexit\n"

	if err := h.run("shell"); err != nil {
		t.Fatalf("shell error = %v", err)
	}

	data, err := os.ReadFile(config.DefaultHistoryPath())
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if got := string(data); got != "news list\nexit\n" {
		t.Errorf("history = %q", got)
	}
}

func TestCommandLines(t *testing.T) {
	lines := commandLines(App(Options{}).Commands)

	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[l] = true
	}
	for _, want := range []string{"course", "course list", "news open", "auth session", "config init"} {
		if !set[want] {
			t.Errorf("commandLines missing %q", want)
		}
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "shell") {
			t.Errorf("commandLines should not offer %q", l)
		}
	}
}
