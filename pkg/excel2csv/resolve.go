package excel2csv

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source is a workbook file discovered for processing.
type Source struct {
	// Path is the workbook path.
	Path string
	// Rel is the path relative to the input root without extension.
	Rel string
}

// Resolve returns the workbooks named by path in traversal order.
// A path with the workbook extension yields itself, even when missing, so
// the loader can report it. A directory yields every workbook below it
// (only the top level when recursive is false). Anything else yields
// ErrSourceNotFound.
func Resolve(path string, recursive bool) ([]Source, error) {
	return resolve(path, recursive, nil)
}

// resolve is Resolve with a callback for subdirectories that could not be
// read and were left out of the result.
func resolve(path string, recursive bool, onSkip func(dir string, err error)) ([]Source, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return scanDir(path, recursive, onSkip)
	}
	if isWorkbookName(path) {
		return []Source{{Path: path, Rel: stem(path)}}, nil
	}
	return nil, fmt.Errorf("%w: %q is not a %s workbook or directory", ErrSourceNotFound, path, WorkbookExtension)
}

func scanDir(root string, recursive bool, onSkip func(dir string, err error)) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			if onSkip != nil {
				onSkip(p, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !isWorkbookName(p) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = filepath.Base(p)
		}
		sources = append(sources, Source{
			Path: p,
			Rel:  strings.TrimSuffix(rel, filepath.Ext(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %q: %v", ErrSourceNotFound, root, err)
	}
	return sources, nil
}

// Stem returns the workbook file name without directory and extension.
func (s Source) Stem() string {
	return stem(s.Path)
}

// isWorkbookName matches the workbook extension and skips Excel owner
// files (~$Book.xlsx) that exist while a workbook is open.
func isWorkbookName(p string) bool {
	base := filepath.Base(p)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), WorkbookExtension)
}

// stem returns the file name without directory and extension.
func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
