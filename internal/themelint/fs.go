package themelint

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the filesystem surface setup and lint need.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Remove(name string) error
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFS is the FileSystem backed by the os package.
var OSFS FileSystem = osFS{}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) {
	// #nosec G304 - paths are fixed names under the project root
	return os.ReadFile(name)
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFS) Remove(name string) error              { return os.Remove(name) }

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func exists(fsys FileSystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

func isDir(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// writeIfChanged writes content to path unless the file already holds
// exactly that content.
func writeIfChanged(fsys FileSystem, path string, content []byte, perm fs.FileMode) (Status, error) {
	existing, err := fsys.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := fsys.WriteFile(path, content, perm); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return StatusCreated, nil
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", path, err)
	case bytes.Equal(existing, content):
		return StatusUnchanged, nil
	}
	if err := fsys.WriteFile(path, content, perm); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return StatusUpdated, nil
}
