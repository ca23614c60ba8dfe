// Package notebook cleans raw notebook exports before they are handed to
// the prompt assembler. Platform export formats (Fabric .py, Synapse .json)
// interleave marker lines with the actual cell content; everything here
// operates on raw lines and preserves the surviving text verbatim.
package notebook

import (
	"path/filepath"
	"strings"
)

// metadataPrefixes are the marker prefixes injected by platform exporters.
// Matching is case-sensitive and applies after leading space/tab trim.
var metadataPrefixes = []string{"# METADATA", "# META", "# CELL"}

func isMetadataLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// StripMetadata removes every metadata marker line from src. Surviving lines
// keep their exact text, order, and line terminators. Idempotent.
func StripMetadata(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for _, line := range strings.SplitAfter(src, "\n") {
		content := strings.TrimRight(line, "\r\n")
		if isMetadataLine(content) {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// CollapseBlankLines reduces every run of consecutive blank (whitespace-only)
// lines to its first line, kept verbatim. Non-blank lines pass through.
func CollapseBlankLines(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	previousBlank := false
	for _, line := range strings.SplitAfter(src, "\n") {
		if line == "" {
			continue
		}
		blank := strings.TrimSpace(line) == ""
		if blank && previousBlank {
			continue
		}
		b.WriteString(line)
		previousBlank = blank
	}
	return b.String()
}

// OutputNames derives the documentation output stem and the display filename
// for a notebook path. The stem is also used as the definitions LIKE prefix.
//
// The Fabric export layout stores every notebook as
// <Name>.Notebook/notebook-content.py; in that case the parent directory name
// (minus the .Notebook suffix) identifies the notebook, not the filename.
func OutputNames(path string) (name, nameExt string) {
	base := filepath.Base(path)

	if base != "notebook-content.py" {
		ext := filepath.Ext(base)
		return strings.TrimSuffix(base, ext), base
	}

	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == string(filepath.Separator) {
		// notebook-content.py sitting at the tree root
		return "notebook-content", base
	}

	name = strings.TrimSuffix(parent, ".Notebook")
	return name, name + ".py"
}
