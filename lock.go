package preflight

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

// DefaultLockPath records the installed hook binaries at the repository root.
const DefaultLockPath = ".preflight-lock.yml"

const lockVersion = 1

// LockFile pins the binaries that managed installs produced, so a changed
// binary is visible in review.
type LockFile struct {
	Version     uint32      `yaml:"version" json:"version"`
	GeneratedAt string      `yaml:"generated_at" json:"generated_at"`
	Hooks       []LockEntry `yaml:"hooks" json:"hooks"`
}

// LockEntry is one installed hook binary.
type LockEntry struct {
	ID       string `yaml:"id" json:"id"`
	Binary   string `yaml:"binary" json:"binary"`
	SHA256   string `yaml:"sha256" json:"sha256"`
	Language string `yaml:"language" json:"language"`
	Source   string `yaml:"source,omitempty" json:"source,omitempty"`
	Entry    string `yaml:"entry,omitempty" json:"entry,omitempty"`
}

// RecordHook records an installed hook binary in the lock file, replacing
// any previous entry with the same id.
func RecordHook(id, language, source, entry, binaryPath string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	lockPath := filepath.Join(root, DefaultLockPath)

	lock, err := loadLock(lockPath)
	if err != nil {
		return err
	}

	binaryRel := binaryPath
	if rel, err := filepath.Rel(root, binaryPath); err == nil && !strings.HasPrefix(rel, "..") {
		binaryRel = rel
	}
	sum, err := sha256File(binaryPath)
	if err != nil {
		return err
	}

	lock.Hooks = slices.DeleteFunc(lock.Hooks, func(e LockEntry) bool {
		return e.ID == id
	})
	lock.Hooks = append(lock.Hooks, LockEntry{
		ID:       id,
		Binary:   binaryRel,
		SHA256:   sum,
		Language: language,
		Source:   source,
		Entry:    entry,
	})
	slices.SortFunc(lock.Hooks, func(a, b LockEntry) int {
		return strings.Compare(a.ID, b.ID)
	})

	return saveLock(lockPath, lock)
}

func loadLock(path string) (*LockFile, error) {
	lock := &LockFile{
		Version:     lockVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lock, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, lock); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lock file %s: %w", path, err)
	}
	lock.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return lock, nil
}

func saveLock(path string, lock *LockFile) error {
	b, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("failed to marshal lock file: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
