package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/utils"
	"github.com/toyz/sdkregen/internal/utils/fileops"
)

// DefaultMarker is the provenance comment AutoRest writes into the header of
// every file it generates.
const DefaultMarker = "Code generated by Microsoft (R) AutoRest Code Generator"

// CleanResult describes what a cleanup pass did
type CleanResult struct {
	Root    string
	Scanned int
	Removed []string
}

// Cleaner removes previously generated sources while leaving hand-written
// files in the same package tree alone
type Cleaner struct {
	fileOps     *fileops.FileOps
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner. Every keep or remove decision is
// reported at debug level.
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{
		fileOps:     fileops.NewFileOps(),
		diagnostics: diagnostics,
	}
}

// Clean walks root and deletes every regular file whose contents contain
// marker. Directories are kept even when they end up empty. A missing root
// is not an error; a root that is a symlink is followed, links below it are
// not. The first file that cannot be read or removed aborts the pass with a
// FileAccessError.
func (c *Cleaner) Clean(root, marker string) (*CleanResult, error) {
	result := &CleanResult{Root: root}

	if marker == "" {
		return result, errors.ConfigurationError("marker", "provenance marker cannot be empty")
	}

	info, err := c.fileOps.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, err
	}
	if !info.IsDir() {
		return result, errors.WrapFileSystemError("read directory", root, fmt.Errorf("not a directory"))
	}

	if err := c.cleanDirectory(root, marker, result); err != nil {
		return result, err
	}
	return result, nil
}

// cleanDirectory recursively cleans a single directory
func (c *Cleaner) cleanDirectory(dir, marker string, result *CleanResult) error {
	entries, err := c.fileOps.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			if err := c.cleanDirectory(path, marker, result); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := c.cleanFile(path, marker, result); err != nil {
				return err
			}
		default:
			c.diagnostics.Debug("Skipped %s (%s)", path, entry.Type())
		}
	}

	return nil
}

// cleanFile removes path if it carries the marker
func (c *Cleaner) cleanFile(path, marker string, result *CleanResult) error {
	result.Scanned++

	content, err := c.fileOps.ReadFile(path)
	if err != nil {
		return err
	}

	if !strings.Contains(content, marker) {
		c.diagnostics.Debug("Kept %s", path)
		return nil
	}

	if err := c.fileOps.RemoveFile(path); err != nil {
		return err
	}

	c.diagnostics.Debug("Removed %s", path)
	result.Removed = append(result.Removed, path)
	return nil
}
