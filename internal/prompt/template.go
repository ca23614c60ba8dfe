package prompt

import (
	"fmt"
	"os"
	"path/filepath"
)

// TemplateLoadError is a missing or unreadable template or context file.
// It is fatal: the run must stop before any network call is attempted.
type TemplateLoadError struct {
	Path string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("load template %s: %v", e.Path, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// TemplateSet is the profile template plus the shared context fragment.
// The context fragment becomes the system message of the chat request.
type TemplateSet struct {
	Template string
	Context  string
}

// Load reads templates/<stem>_prompt.md for the profile and the shared
// templates/context.md under root. A recognized profile whose template file
// is missing fails; there is no silent fallback to the default template.
func Load(root string, p Profile) (TemplateSet, error) {
	templatePath := filepath.Join(root, "templates", p.TemplateStem()+"_prompt.md")
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return TemplateSet{}, &TemplateLoadError{Path: templatePath, Err: err}
	}

	contextPath := filepath.Join(root, "templates", "context.md")
	contextBody, err := os.ReadFile(contextPath)
	if err != nil {
		return TemplateSet{}, &TemplateLoadError{Path: contextPath, Err: err}
	}

	return TemplateSet{Template: string(template), Context: string(contextBody)}, nil
}
