package store

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AttachmentStore writes decoded attachments under a single root directory.
// クライアントから渡されたパスをそのまま書き込むと任意パスへの書き込みに
// なるため、Root 配下に解決できない名前はすべて拒否する。
type AttachmentStore struct {
	Root string
}

// NewAttachmentStore creates an AttachmentStore rooted at dir
func NewAttachmentStore(dir string) *AttachmentStore {
	return &AttachmentStore{Root: dir}
}

// Resolve maps a client-supplied name to a path inside the store root.
// Absolute paths and ".." traversal are rejected.
func (s *AttachmentStore) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file path")
	}

	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path %q escapes upload directory", name)
	}

	return filepath.Join(s.Root, clean), nil
}

// Save decodes a data-URI style payload ("<metadata>,<base64>") and writes
// the decoded bytes to name inside the store root. It returns the path the
// file was written to. The metadata prefix before the comma is discarded
// without validation.
func (s *AttachmentStore) Save(encoded, name string) (string, error) {
	// 'data:*/*;base64,' などのプレフィックスを切り落とす
	_, payload, found := strings.Cut(encoded, ",")
	if !found {
		return "", fmt.Errorf("invalid file data: missing base64 payload")
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, decoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return path, nil
}
