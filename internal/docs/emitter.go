// Package docs writes the generated Markdown to its deterministic location
// under docs/newly-documented.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError is an output I/O failure. Fatal; the generated content is lost
// and must be regenerated on retry.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write documentation %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Emitter writes one Markdown file per run into Dir, creating the directory
// on demand and overwriting an existing file of the same name.
type Emitter struct {
	Dir string
}

// NewEmitter targets <root>/docs/newly-documented.
func NewEmitter(root string) Emitter {
	return Emitter{Dir: filepath.Join(root, "docs", "newly-documented")}
}

// Emit writes markdown to <Dir>/<name>.md and returns the written path.
func (e Emitter) Emit(name, markdown string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", &WriteError{Path: e.Dir, Err: err}
	}
	path := filepath.Join(e.Dir, name+".md")
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
