// Package mass batch-runs the documentation pipeline over a directory tree,
// driven by a small YAML manifest.
package mass

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"doxcer/internal/pipeline"
	"doxcer/internal/prompt"
)

// Manifest describes one batch: which tree to walk, which files to pick up,
// and which template profile to apply to all of them. An unrecognized
// selector name falls back to the default profile.
type Manifest struct {
	Root      string `yaml:"root"`
	Extension string `yaml:"extension"`
	Selector  string `yaml:"selector"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if strings.TrimSpace(m.Root) == "" {
		return Manifest{}, fmt.Errorf("manifest %s: root is required", path)
	}
	if strings.TrimSpace(m.Extension) == "" {
		return Manifest{}, fmt.Errorf("manifest %s: extension is required", path)
	}
	if !strings.HasPrefix(m.Extension, ".") {
		m.Extension = "." + m.Extension
	}
	return m, nil
}

// Profile resolves the manifest selector to a template profile.
func (m Manifest) Profile() prompt.Profile {
	return prompt.ProfileFromName(m.Selector)
}

// ignoredDirs are skipped while walking; notebook exports never live there.
var ignoredDirs = []string{".git", "node_modules", "vendor"}

// Collect walks root and returns every file with the extension, in the
// walk's lexical order.
func Collect(root, extension string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range ignoredDirs {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// Runner executes the pipeline once per collected file.
type Runner struct {
	Deps     pipeline.Deps
	Progress io.Writer // defaults to os.Stdout
}

// Run processes every matching file under the manifest root and stops at the
// first failure, reporting which file broke the batch.
func (r Runner) Run(ctx context.Context, m Manifest) error {
	progress := r.Progress
	if progress == nil {
		progress = os.Stdout
	}

	files, err := Collect(m.Root, m.Extension)
	if err != nil {
		return err
	}
	fmt.Fprintf(progress, "Found %d file(s) with extension '%s' in %s\n", len(files), m.Extension, m.Root)

	profile := m.Profile()
	for i, path := range files {
		fmt.Fprintf(progress, "[%d/%d] %s\n", i+1, len(files), path)
		if _, err := pipeline.Run(ctx, r.Deps, pipeline.RunInput{Path: path, Profile: profile}); err != nil {
			return fmt.Errorf("document %s: %w", path, err)
		}
	}
	return nil
}
