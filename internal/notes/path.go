package notes

import (
	"path/filepath"
	"strings"

	"github.com/gorewood/jot/internal/output"
)

// Path is a note location resolved against the base dir.
type Path struct {
	// Abs is the absolute path handed to the editor.
	Abs string
	// Rel is Abs relative to the base dir, as handed to the lister.
	Rel string
}

// ResolvePath resolves path against baseDir. Relative paths are taken
// relative to baseDir. With contain set, paths resolving outside baseDir
// are rejected.
func ResolvePath(baseDir, path string, contain bool) (Path, error) {
	if path == "" {
		return Path{}, output.NewUserError("empty note path")
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(baseDir, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return Path{}, output.NewSystemErrorWithCause("resolving "+path+": "+err.Error(), err)
	}

	if contain && escapes(rel) {
		return Path{}, output.NewUserError("given path must be below base dir; " + abs + " is not")
	}
	return Path{Abs: abs, Rel: rel}, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
