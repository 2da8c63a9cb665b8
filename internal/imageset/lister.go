package imageset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// DefaultExtensions are the image extensions scanned when no override is given
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// ListOptions controls directory listing behavior
type ListOptions struct {
	// Extension, when set, replaces the default extension filter with a
	// single caller-supplied extension (leading dot optional).
	Extension string
}

// Lister lists image files in a directory filtered by supported extensions
type Lister struct {
	logger zerolog.Logger
}

// NewLister creates a new directory lister
func NewLister(logger zerolog.Logger) *Lister {
	return &Lister{
		logger: logger.With().Str("component", "ImageLister").Logger(),
	}
}

// List returns the file names in dirPath whose extension matches the filter,
// in directory iteration order. An empty or non-matching directory yields an
// empty slice, not an error.
func (l *Lister) List(dirPath string, opts ListOptions) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil || !info.IsDir() {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrDirectoryNotFound, err, "cannot access directory "+dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrDirectoryNotFound, err, "cannot read directory "+dirPath)
		}
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrDirectoryRead, err, "failed to read directory "+dirPath)
	}

	extensions := l.resolveExtensions(opts)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesExtension(entry.Name(), extensions) {
			names = append(names, entry.Name())
		}
	}

	l.logger.Debug().
		Str("dir", dirPath).
		Int("matched", len(names)).
		Int("total_entries", len(entries)).
		Msg("Listed image directory")

	return names, nil
}

func (l *Lister) resolveExtensions(opts ListOptions) []string {
	if opts.Extension == "" {
		return DefaultExtensions
	}
	ext := opts.Extension
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return []string{ext}
}

func matchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range extensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}
