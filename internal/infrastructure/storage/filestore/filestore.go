// Package filestore keeps uploaded bytes on local disk, one directory per owner:
//
//	<root>/user_<ownerID>/<storedName>
//
// Every path handed out or opened is resolved inside the owner directory.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filevault-api/internal/domain/user"
)

const (
	ownerDirPrefix = "user_"
	tmpPrefix      = ".upload-"
	tmpPattern     = tmpPrefix + "*.tmp"
	dirPerm        = 0o750
)

var (
	ErrInvalidFileName = errors.New("file name contains invalid path sequence")
	ErrInvalidPath     = errors.New("path escapes owner directory")
	ErrNotFound        = errors.New("file not found")
)

type FileStore struct {
	root   string
	logger *zap.Logger
}

// New resolves root to an absolute path and creates it. A failure here is
// fatal for the process.
func New(root string, logger *zap.Logger) (*FileStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root %s: %w", root, err)
	}
	abs = filepath.Clean(abs)
	if err = os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", abs, err)
	}

	logger.Info("file storage initialized", zap.String("root", abs))

	return &FileStore{root: abs, logger: logger}, nil
}

func (s *FileStore) Root() string { return s.root }

// Store writes content under a freshly generated name and returns that name.
// The write goes through a temp file in the owner directory followed by a
// rename, so readers never observe a partial file.
func (s *FileStore) Store(content io.Reader, originalName string, ownerID user.ID) (string, error) {
	if err := validateOriginalName(originalName); err != nil {
		return "", err
	}

	storedName := uuid.NewString() + extension(originalName)

	dir := s.ownerDir(ownerID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create owner directory %s: %w", dir, err)
	}

	dst := filepath.Join(dir, storedName)
	if _, err := os.Lstat(dst); err == nil {
		s.logger.Warn("stored name collision, overwriting existing file",
			zap.Int64("owner_id", int64(ownerID)),
			zap.String("path", dst),
		)
	}

	tmp, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err = io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write content: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("fsync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename into place: %w", err)
	}

	s.logger.Info("file stored",
		zap.Int64("owner_id", int64(ownerID)),
		zap.String("original_name", originalName),
		zap.String("stored_name", storedName),
	)

	return storedName, nil
}

// Load opens the stored file for reading. The caller must close it.
func (s *FileStore) Load(storedName string, ownerID user.ID) (io.ReadCloser, error) {
	p, err := s.resolve(ownerID, storedName)
	if err != nil {
		return nil, err
	}

	// canonical check: a symlink inside the owner dir must not lead outside it
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		s.logger.Error("file not found or unreadable", zap.String("path", p), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}
	realDir, err := filepath.EvalSymlinks(s.ownerDir(ownerID))
	if err != nil || !within(realDir, resolved) {
		s.logger.Error("resolved path escapes owner directory", zap.String("path", p), zap.String("resolved", resolved))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}

	f, err := os.Open(resolved)
	if err != nil {
		s.logger.Error("file not found or unreadable", zap.String("path", p), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, storedName)
	}

	return f, nil
}

// Delete removes the stored file. It reports false when nothing was removed,
// either because the file is absent or because removal failed.
func (s *FileStore) Delete(storedName string, ownerID user.ID) bool {
	p, err := s.resolve(ownerID, storedName)
	if err != nil {
		s.logger.Warn("refusing to delete unsafe path", zap.String("stored_name", storedName), zap.Error(err))
		return false
	}

	if err = os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("file to delete not found", zap.String("path", p))
		} else {
			s.logger.Error("failed to delete file", zap.String("path", p), zap.Error(err))
		}
		return false
	}

	s.logger.Info("file deleted", zap.String("path", p))

	return true
}

// PathFor returns the absolute path a stored name maps to. No I/O.
func (s *FileStore) PathFor(ownerID user.ID, storedName string) (string, error) {
	return s.resolve(ownerID, storedName)
}

// Exists reports whether the stored file is present. A stat error other than
// "not exist" is returned as is, since absence cannot be proven.
func (s *FileStore) Exists(ownerID user.ID, storedName string) (bool, error) {
	p, err := s.resolve(ownerID, storedName)
	if err != nil {
		return false, err
	}
	_, err = os.Lstat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// ListStored returns the names of regular files in the owner directory.
func (s *FileStore) ListStored(ownerID user.ID) ([]string, error) {
	entries, err := os.ReadDir(s.ownerDir(ownerID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), tmpPrefix) {
			continue
		}
		names = append(names, e.Name())
	}

	return names, nil
}

func (s *FileStore) ownerDir(ownerID user.ID) string {
	return filepath.Join(s.root, ownerDirPrefix+strconv.FormatInt(int64(ownerID), 10))
}

func (s *FileStore) resolve(ownerID user.ID, storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		strings.ContainsAny(storedName, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, storedName)
	}

	dir := s.ownerDir(ownerID)
	p := filepath.Clean(filepath.Join(dir, storedName))
	if !within(dir, p) || p == dir {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, storedName)
	}

	return p, nil
}

func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func validateOriginalName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFileName)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return nil
}

// extension returns ".ext" when the last dot is neither the first nor the
// last character of name.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
