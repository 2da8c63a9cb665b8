package filemanager

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// FileInfo holds basic metadata about a file
type FileInfo struct {
	Path        string
	Name        string
	Size        int64
	IsDir       bool
	ModTime     time.Time
	Permissions fs.FileMode
}

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrMissingSourceFile, nil, fmt.Sprintf("file not found: %s", path))
		}
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to get file info for: %s", path))
	}

	return &FileInfo{
		Path:        path,
		Name:        stat.Name(),
		Size:        stat.Size(),
		IsDir:       stat.IsDir(),
		ModTime:     stat.ModTime(),
		Permissions: stat.Mode(),
	}, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := fm.GetFileInfo(path)
		if err != nil {
			return errorwrapper.WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir {
			return errorwrapper.NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return errorwrapper.WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (fm *FileManager) WriteFile(path string, data []byte) error {
	if err := fm.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errorwrapper.WrapError(err, "failed to write file: "+path)
	}
	return nil
}

// RemoveFile deletes a file, ignoring the case where it is already gone
func (fm *FileManager) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errorwrapper.WrapError(err, "failed to remove file: "+path)
	}
	return nil
}

// WaitForFile polls for the existence of a file until it appears or the
// timeout elapses. External tools may write their output asynchronously,
// so callers cannot assume the file exists as soon as the tool returns.
func (fm *FileManager) WaitForFile(ctx context.Context, path string, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if fm.FileExists(path) {
			return nil
		}
		if time.Now().After(deadline) {
			return errorwrapper.WrapSentinel(errorwrapper.ErrDiffArtifactTimeout, nil,
				fmt.Sprintf("file %s did not appear within %s", path, timeout))
		}

		select {
		case <-ctx.Done():
			return errorwrapper.WrapError(ctx.Err(), "wait for file cancelled: "+path)
		case <-ticker.C:
		}
	}
}
