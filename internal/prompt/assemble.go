package prompt

import (
	"strings"
	"time"

	"doxcer/internal/definitions"
)

// TimestampLayout is the generation timestamp format, rendered in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Placeholder tokens recognized in templates. Each is substituted exactly
// once; templates are static and versioned in-repo, so no escaping exists.
const (
	PlaceholderFilename    = "{{notebook_filename}}"
	PlaceholderGeneratedAt = "{{generated_at}}"
	PlaceholderDefinitions = "{{definitions}}"
	PlaceholderCode        = "{{notebook_code}}"
	PlaceholderContext     = "{{context}}"
)

var placeholders = []string{
	PlaceholderFilename,
	PlaceholderGeneratedAt,
	PlaceholderDefinitions,
	PlaceholderCode,
	PlaceholderContext,
}

// AssembleInput carries every prompt ingredient. GeneratedAt is injected by
// the caller so assembly stays a pure function of its input.
type AssembleInput struct {
	Template    string
	Context     string
	Notebook    string // cleaned notebook body
	Filename    string // display filename, extension included
	Definitions []definitions.Record
	GeneratedAt time.Time
}

// Assemble builds the user prompt. Byte-deterministic: identical input,
// timestamp included, yields identical output.
//
// Templates with recognized placeholders get each token substituted once.
// A template with no recognized placeholder degrades gracefully: it is kept
// verbatim as the "Documentation template" section of the fixed legacy frame,
// with the remaining sections appended around it.
//
// An empty definitions slice omits the definitions section entirely.
func Assemble(in AssembleInput) string {
	generatedAt := in.GeneratedAt.UTC().Format(TimestampLayout)
	defsBlock := definitions.Render(in.Definitions)

	if hasPlaceholder(in.Template) {
		out := in.Template
		out = strings.Replace(out, PlaceholderFilename, in.Filename, 1)
		out = strings.Replace(out, PlaceholderGeneratedAt, generatedAt, 1)
		out = strings.Replace(out, PlaceholderDefinitions, defsBlock, 1)
		out = strings.Replace(out, PlaceholderCode, in.Notebook, 1)
		out = strings.Replace(out, PlaceholderContext, in.Context, 1)
		return out
	}

	sections := []string{
		"Current date time: " + generatedAt,
		"Notebook filename: " + in.Filename,
	}
	if defsBlock != "" {
		sections = append(sections, "Definitions:\n"+defsBlock)
	}
	sections = append(sections,
		"Documentation template: "+in.Template,
		"Code: "+in.Notebook,
	)
	return strings.Join(sections, "\n\n")
}

func hasPlaceholder(template string) bool {
	for _, token := range placeholders {
		if strings.Contains(template, token) {
			return true
		}
	}
	return false
}
