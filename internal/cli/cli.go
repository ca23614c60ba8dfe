// Package cli parses the doxcer invocation: one notebook path and an
// optional platform selector flag, accepted in either order.
package cli

import (
	"fmt"
	"strings"

	"doxcer/internal/prompt"
)

// ArgumentError is an invalid command-line invocation. Fatal; the caller
// prints usage and exits non-zero.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return "invalid arguments: " + e.Reason
}

// Invocation is a parsed command line.
type Invocation struct {
	Path     string
	Profile  prompt.Profile
	ShowHelp bool
}

// Parse interprets args (excluding the program name). Selector and path may
// appear in either order. Repeating the same selector is tolerated;
// conflicting selectors, unknown flags, multiple paths, and a missing path
// are all *ArgumentError. "--help" or "-h" anywhere wins.
func Parse(args []string) (Invocation, error) {
	var (
		selector    *prompt.Profile
		path        string
		haveProfile bool
	)

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return Invocation{ShowHelp: true}, nil
		}

		if p, ok := prompt.ProfileFromSelector(arg); ok {
			if haveProfile && *selector != p {
				return Invocation{}, &ArgumentError{Reason: fmt.Sprintf(
					"conflicting selectors: both '%s' and '%s' were provided", *selector, p)}
			}
			selector = &p
			haveProfile = true
			continue
		}

		if strings.HasPrefix(arg, "-") {
			return Invocation{}, &ArgumentError{Reason: fmt.Sprintf(
				"unknown selector '%s'; supported selectors: %s", arg, strings.Join(prompt.Selectors(), ", "))}
		}

		if path != "" {
			return Invocation{}, &ArgumentError{Reason: fmt.Sprintf(
				"multiple input paths were provided: '%s' and '%s'", path, arg)}
		}
		path = arg
	}

	if path == "" {
		return Invocation{}, &ArgumentError{Reason: "missing required notebook path argument"}
	}

	profile := prompt.Default
	if haveProfile {
		profile = *selector
	}

	return Invocation{Path: path, Profile: profile}, nil
}

// Usage returns the help text printed for --help and after argument errors.
func Usage() string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  doxcer <path/to/notebook>\n")
	b.WriteString("  doxcer [selector] <path/to/notebook>\n")
	b.WriteString("  doxcer mass <manifest.yaml>\n")
	b.WriteString("Selectors:\n")
	b.WriteString("  " + strings.Join(prompt.Selectors(), " | ") + "\n")
	b.WriteString("The path and selector can be provided in any order.\n")
	return b.String()
}
