package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLatestLogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preflight.log")
	content := `{"level":"INFO","msg":"one"}
{"level":"INFO","msg":"two"}
not json
{"level":"ERROR","msg":"three"}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	logs := latestLogs(path, 2)
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	m, ok := logs[1].(map[string]any)
	if !ok {
		t.Fatalf("expected parsed record, got %T", logs[1])
	}
	if m["msg"] != "three" {
		t.Errorf("msg = %v, want three", m["msg"])
	}
	if logs[0] != "not json" {
		t.Errorf("unparseable lines should be kept raw, got %v", logs[0])
	}
}

func TestLatestLogsMissingFile(t *testing.T) {
	if logs := latestLogs(filepath.Join(t.TempDir(), "nope.log"), 5); logs != nil {
		t.Errorf("missing file should yield nil, got %v", logs)
	}
}

func TestGenPngArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no args", nil, false},
		{"three args", []string{"512", "512", "out.png"}, false},
		{"one arg", []string{"512"}, true},
		{"two args", []string{"512", "512"}, true},
		{"four args", []string{"1", "2", "a", "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := genPngCmd.Args(genPngCmd, tt.args)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
