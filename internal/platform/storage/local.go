// Package storage keeps uploaded profile pictures on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultURLPrefix is the public path under which the upload directory is served.
	DefaultURLPrefix = "/uploads"
	// MaxFileSize is the largest file Save accepts.
	MaxFileSize = 5 << 20
)

// allowedExt lists the image extensions accepted for avatars.
var allowedExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var (
	// ErrUnsupportedType is returned for files that are not images.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned for files over the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// LocalStorage writes files into dir and exposes them under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxSize: MaxFileSize}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// URLPrefix returns the public path prefix.
func (s *LocalStorage) URLPrefix() string {
	return s.urlPrefix
}

// Save copies r into a new uniquely named file and returns its public URL.
// The original name only contributes its extension. Files over the size limit are rejected and not kept.
func (s *LocalStorage) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if n > s.maxSize {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: over %d bytes", ErrFileTooLarge, s.maxSize)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes the file behind a URL returned by Save.
// URLs outside the prefix (such as Google profile pictures) and missing files are ignored.
func (s *LocalStorage) Remove(url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(url)
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
