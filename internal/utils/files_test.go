package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.json")
	if err := SafeWriteFile(p, []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "{}" {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"n": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"n\": 1\n}" {
		t.Fatalf("unexpected: %q", b)
	}
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, "data")
	deep := filepath.Join(root, "a", "b")
	if err := EnsureDir(data); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(deep); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(data, "students.json")
	if err := os.WriteFile(want, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindUp(deep, "students.json", filepath.Join("data", "students.json"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if _, err := FindUp(deep, "absent.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
