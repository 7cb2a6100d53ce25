// Package fileutil holds the small file and path helpers shared by the
// converter and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrEmptyExtension  = errors.New("extension cannot be empty")
	ErrUnsafeExtension = errors.New("extension contains a path separator or null byte")
)

// tempPrefix names the temporary HTML files handed to the browser.
const tempPrefix = "md2html-"

// WriteTempFile writes content to a new temporary file ending in .ext.
// The returned cleanup removes the file and is safe to call more than once.
func WriteTempFile(content, ext string) (path string, cleanup func(), err error) {
	ext = strings.TrimPrefix(ext, ".")
	if err := ValidateExtension(ext); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}

// ValidateExtension rejects extensions that could steer a file name
// outside its directory.
func ValidateExtension(ext string) error {
	if ext == "" {
		return ErrEmptyExtension
	}
	if strings.ContainsAny(ext, "/\\\x00") {
		return ErrUnsafeExtension
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsFilePath reports whether s contains a path separator and so should be
// read from disk rather than looked up by name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ReplaceExt swaps the extension of path for ext, which must include the dot.
// A path without an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// EnsureExt appends ext when path has no extension at all.
func EnsureExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}

// ListByExt returns the sorted names of regular files in dir whose
// extension matches ext case-insensitively.
func ListByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
