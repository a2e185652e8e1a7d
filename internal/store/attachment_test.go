package store

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAttachmentStore_Save data-URI形式のペイロードがデコードされて書き込まれる
func TestAttachmentStore_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewAttachmentStore(dir)

	content := []byte("hello, attachment \x00\x01\x02")
	encoded := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(content)

	path, err := s.Save(encoded, "note.bin")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if path != filepath.Join(dir, "note.bin") {
		t.Errorf("Expected path inside %s, got %s", dir, path)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if string(written) != string(content) {
		t.Errorf("Written bytes differ from decoded payload: got %q", written)
	}
}

// TestAttachmentStore_MissingComma カンマ無しのペイロードは失敗
func TestAttachmentStore_MissingComma(t *testing.T) {
	s := NewAttachmentStore(t.TempDir())

	if _, err := s.Save("aGVsbG8=", "x.bin"); err == nil {
		t.Error("Expected error for payload without comma")
	}
}

// TestAttachmentStore_InvalidBase64 base64として不正なペイロードは失敗
func TestAttachmentStore_InvalidBase64(t *testing.T) {
	s := NewAttachmentStore(t.TempDir())

	if _, err := s.Save("data:text/plain;base64,@@@not-base64@@@", "x.bin"); err == nil {
		t.Error("Expected error for invalid base64 payload")
	}
}

// TestAttachmentStore_RejectsEscapingPaths ルート外へ出るパスは拒否される
func TestAttachmentStore_RejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	s := NewAttachmentStore(dir)
	encoded := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

	cases := []string{
		"../escape.txt",
		"../../etc/passwd",
		"/etc/passwd",
		"a/../../escape.txt",
		"",
	}

	for _, name := range cases {
		if _, err := s.Save(encoded, name); err == nil {
			t.Errorf("Expected rejection for path %q", name)
		}
	}

	// ルート外に何も書かれていないことを確認
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt")); err == nil {
		t.Error("File was written outside the store root")
	}
}

// TestAttachmentStore_SubdirectoryInsideRoot ルート内に解決されるパスは許可
func TestAttachmentStore_SubdirectoryInsideRoot(t *testing.T) {
	dir := t.TempDir()
	s := NewAttachmentStore(dir)

	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	encoded := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("nested"))
	path, err := s.Save(encoded, "sub/n.txt")
	if err != nil {
		t.Fatalf("Save into subdirectory failed: %v", err)
	}

	if !strings.HasPrefix(path, dir) {
		t.Errorf("Expected path under %s, got %s", dir, path)
	}
}

// TestAttachmentStore_MissingDirectory 存在しないディレクトリへの書き込みは失敗
func TestAttachmentStore_MissingDirectory(t *testing.T) {
	s := NewAttachmentStore(t.TempDir())

	encoded := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	if _, err := s.Save(encoded, "no-such-dir/x.txt"); err == nil {
		t.Error("Expected error when parent directory does not exist")
	}
}
