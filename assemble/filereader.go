package assemble

import (
	"os"
	"path/filepath"
)

// FileReader is the os-backed interpreter.SourceReader used by cmd/lasm. It
// resolves include/incbin paths relative to whichever directory is
// currently active, tracked as a stack so nested includes resolve relative
// to the file that named them rather than the original working directory
// (spec §5's "scoped acquire/release" contract for ChangeDir). When a path
// isn't found there, it falls back to searchPaths in order, the project's
// configured include search paths (config.Config's [include] section).
type FileReader struct {
	dirs        []string
	searchPaths []string
}

// NewFileReader returns a FileReader rooted at dir (the directory containing
// the top-level source file, or "." for stdin/in-memory sources), falling
// back to searchPaths (in order) for any include/incbin path not found
// relative to the active directory.
func NewFileReader(dir string, searchPaths ...string) *FileReader {
	if dir == "" {
		dir = "."
	}
	return &FileReader{dirs: []string{dir}, searchPaths: searchPaths}
}

func (r *FileReader) GetDir() string {
	return r.dirs[len(r.dirs)-1]
}

// resolve joins path against the active directory first; if that location
// doesn't exist, it tries each configured search path in turn before
// falling back to the active-directory form (so a failed read still
// reports the path a user would expect).
func (r *FileReader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	primary := filepath.Join(r.GetDir(), path)
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	for _, sp := range r.searchPaths {
		candidate := filepath.Join(sp, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return primary
}

func (r *FileReader) ReadText(path string) (string, error) {
	b, err := os.ReadFile(r.resolve(path))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *FileReader) ReadBinary(path string) ([]byte, error) {
	return os.ReadFile(r.resolve(path))
}

// ChangeDir pushes the directory containing path (or path itself, when
// isFile is false) onto the directory stack and returns a restore func that
// pops it back off. Callers must defer restore() around whatever they read
// relative to the new directory, and nothing else — the push/pop pairing is
// how nested includes resolve against the file that named them instead of
// the original top-level directory.
func (r *FileReader) ChangeDir(path string, isFile bool) (func(), error) {
	full := r.resolve(path)
	dir := full
	if isFile {
		dir = filepath.Dir(full)
	}
	r.dirs = append(r.dirs, dir)
	return func() {
		r.dirs = r.dirs[:len(r.dirs)-1]
	}, nil
}
