package localstore

import (
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the single seam between the chart cache and its backing
// key-value storage. Both operations are fail-soft: a false return means
// the backing store is unavailable or the key is absent.
type BlobStore interface {
	Read(key string) ([]byte, bool)
	Write(key string, data []byte) bool
}

// FileBlobStore keeps each key as one file under a base directory.
type FileBlobStore struct {
	dir string
}

// NewFileBlobStore creates a file-backed blob store rooted at dir
func NewFileBlobStore(dir string) *FileBlobStore {
	return &FileBlobStore{dir: dir}
}

// Read loads the blob for a key. Missing files and I/O failures both
// report false; the caller treats them identically.
func (s *FileBlobStore) Read(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores the blob for a key, creating the base directory on demand.
func (s *FileBlobStore) Write(key string, data []byte) bool {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return false
	}
	return os.WriteFile(s.path(key), data, 0644) == nil
}

func (s *FileBlobStore) path(key string) string {
	// Keys are dotted identifiers; keep them filesystem-safe.
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}
