package fileops

import (
	"os"

	"github.com/toyz/sdkregen/internal/errors"
)

// FileOps provides validated file operations whose failures are reported
// as FileAccessErrors naming the operation and path
type FileOps struct {
	pathValidator *PathValidator
}

// NewFileOps creates a new FileOps instance
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
	}
}

// ReadFile reads a file and returns its contents as a string
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return "", errors.WrapFileSystemError("check", filePath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("read", cleanPath, err)
	}

	return string(content), nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return errors.WrapFileSystemError("check", filePath, err)
	}

	if err := os.Remove(cleanPath); err != nil {
		return errors.WrapFileSystemError("remove", cleanPath, err)
	}

	return nil
}

// ReadDir reads a directory with path validation and error handling
func (fo *FileOps) ReadDir(dirPath string) ([]os.DirEntry, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(dirPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("check", dirPath, err)
	}

	entries, err := os.ReadDir(cleanPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", cleanPath, err)
	}

	return entries, nil
}

// Stat returns file info, following a symlink at path. A missing path, or
// a link whose target is missing, matches fs.ErrNotExist through errors.Is.
func (fo *FileOps) Stat(path string) (os.FileInfo, error) {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("check", path, err)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("check", cleanPath, err)
	}
	return info, nil
}
