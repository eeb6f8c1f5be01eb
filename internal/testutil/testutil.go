// Package testutil provides shared test helpers for building posts and attachment trees.
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ehwaz/internal/storage"
)

// WriteFile creates rel (parents included) under root and returns the
// absolute path of the new file.
func WriteFile(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return abs
}

// PostsDir creates a temporary posts directory with a storage.Dir over it.
func PostsDir(t *testing.T) (string, *storage.Dir) {
	t.Helper()
	dir := t.TempDir()
	docs, err := storage.NewDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, docs
}

// Checksum returns the hex-encoded SHA-256 digest of the file at path.
func Checksum(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
