package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

// FileStore keeps the document as a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (model.Document, error) {
	trimmed := strings.TrimSpace(s.path)
	if trimmed == "" {
		return model.EmptyDocument(), nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.EmptyDocument(), nil
		}
		return model.Document{}, wrapErr("read", trimmed, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.EmptyDocument(), nil
	}
	var file documentFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return model.Document{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, trimmed, err)
	}
	return fromFile(file)
}

// Save writes the document to a temporary sibling, flushes it to disk and
// renames it over the target so a crash never leaves a half-written or empty
// file behind.
func (s *FileStore) Save(_ context.Context, doc model.Document) error {
	if strings.TrimSpace(s.path) == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapErr("mkdir", dir, err)
		}
	}
	payload, err := json.MarshalIndent(toFile(doc), "", "    ")
	if err != nil {
		return wrapErr("encode", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := writeSynced(tmp, append(payload, '\n')); err != nil {
		_ = os.Remove(tmp)
		return wrapErr("write", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return wrapErr("rename", s.path, err)
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
