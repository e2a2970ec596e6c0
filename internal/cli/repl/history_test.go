package repl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistory_AddAndGet(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("course list")
	h.Add("class list")

	if got := h.Get(0); got != "class list" {
		t.Errorf("Get(0) = %q, want %q", got, "class list")
	}
	if got := h.Get(1); got != "course list" {
		t.Errorf("Get(1) = %q, want %q", got, "course list")
	}
	if got := h.Get(2); got != "" {
		t.Errorf("Get(2) = %q, want empty", got)
	}
	if got := h.Get(-1); got != "" {
		t.Errorf("Get(-1) = %q, want empty", got)
	}
}

func TestHistory_SkipsBlankAndRepeats(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("news list")
	h.Add("news list")
	h.Add("   ")
	h.Add("course list")
	h.Add("news list")

	want := []string{"news list", "course list", "news list"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory("", 3)
	for _, cmd := range []string{"a", "b", "c", "d", "e"} {
		h.Add(cmd)
	}

	want := []string{"c", "d", "e"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}
}

func TestHistory_DefaultSize(t *testing.T) {
	h := NewHistory("", 0)
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
}

func TestHistory_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(path, 10)
	h.Add("course list")
	h.Add("auth status")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat history: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("history mode = %o, want 600", perm)
	}

	loaded := NewHistory(path, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := loaded.Entries(), h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded = %q, want %q", got, want)
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"), 10)
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_InMemoryOnly(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("x")
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}
