package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
)

func readLock(t *testing.T, dir string) *LockFile {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, DefaultLockPath))
	if err != nil {
		t.Fatal(err)
	}
	lock := &LockFile{}
	if err := yaml.Unmarshal(b, lock); err != nil {
		t.Fatal(err)
	}
	return lock
}

func TestRecordHook(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	bin := writeFile(t, filepath.Join(dir, ".preflight-tools", "ruff", "bin", "ruff"), "#!/bin/sh\n")

	if err := RecordHook("ruff-check", "python", "ruff", "ruff", bin); err != nil {
		t.Fatal(err)
	}

	lock := readLock(t, dir)
	if lock.Version != lockVersion {
		t.Errorf("version = %d, want %d", lock.Version, lockVersion)
	}
	if lock.GeneratedAt == "" {
		t.Error("generated_at should be set")
	}
	if len(lock.Hooks) != 1 {
		t.Fatalf("hooks = %d, want 1", len(lock.Hooks))
	}
	e := lock.Hooks[0]
	if e.ID != "ruff-check" || e.Language != "python" || e.Source != "ruff" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Binary != filepath.Join(".preflight-tools", "ruff", "bin", "ruff") {
		t.Errorf("binary should be repo-relative, got %s", e.Binary)
	}
	if len(e.SHA256) != 64 {
		t.Errorf("sha256 = %q", e.SHA256)
	}
}

func TestRecordHookReplacesEntry(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	bin := writeFile(t, filepath.Join(dir, "tool"), "v1\n")

	if err := RecordHook("tool", "binary", "https://example.com/tool", "", bin); err != nil {
		t.Fatal(err)
	}
	first := readLock(t, dir).Hooks[0].SHA256

	writeFile(t, bin, "v2\n")
	if err := RecordHook("tool", "binary", "https://example.com/tool", "", bin); err != nil {
		t.Fatal(err)
	}

	lock := readLock(t, dir)
	if len(lock.Hooks) != 1 {
		t.Fatalf("entry should be replaced, got %d entries", len(lock.Hooks))
	}
	if lock.Hooks[0].SHA256 == first {
		t.Error("sha256 should change with the binary")
	}
}

func TestRecordHookSortsByID(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	bin := writeFile(t, filepath.Join(dir, "tool"), "x\n")

	for _, id := range []string{"zz", "aa", "mm"} {
		if err := RecordHook(id, "rust", "", "", bin); err != nil {
			t.Fatal(err)
		}
	}
	lock := readLock(t, dir)
	var ids []string
	for _, e := range lock.Hooks {
		ids = append(ids, e.ID)
	}
	want := []string{"aa", "mm", "zz"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}
