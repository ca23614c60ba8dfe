// Package pipeline runs one documentation pass end to end: read notebook,
// clean, resolve templates, fetch definitions, assemble the prompt, call the
// model, write the output. Strictly sequential; any failure is fatal to the
// invocation and no partial output is written.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"doxcer/internal/definitions"
	"doxcer/internal/docs"
	"doxcer/internal/llm"
	"doxcer/internal/notebook"
	"doxcer/internal/prompt"
)

// Emitter is the output writer; satisfied by docs.Emitter.
type Emitter interface {
	Emit(name, markdown string) (string, error)
}

var _ Emitter = docs.Emitter{}

// Deps are the collaborators for one run, injected so tests can stub the
// store, the model, the clock, and the emitter.
type Deps struct {
	Root    string
	Logger  *slog.Logger
	Store   definitions.Store // nil when the definitions lookup is disabled
	LLM     llm.Client
	Emitter Emitter
	Now     func() time.Time // defaults to time.Now
}

// RunInput identifies the notebook to document.
type RunInput struct {
	Path    string
	Profile prompt.Profile
}

// RunResult reports what a successful run produced.
type RunResult struct {
	OutputPath  string
	Definitions int
}

// Run executes the pipeline. Template resolution happens before any network
// or database call, so a missing template never costs a model invocation.
func Run(ctx context.Context, deps Deps, in RunInput) (RunResult, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	raw, err := os.ReadFile(in.Path)
	if err != nil {
		return RunResult{}, fmt.Errorf("read notebook %s: %w", in.Path, err)
	}

	name, nameExt := notebook.OutputNames(in.Path)
	cleaned := notebook.CollapseBlankLines(notebook.StripMetadata(string(raw)))
	logger.Debug("notebook cleaned", "name", name, "bytes", len(cleaned))

	templates, err := prompt.Load(deps.Root, in.Profile)
	if err != nil {
		return RunResult{}, err
	}

	var records []definitions.Record
	if deps.Store != nil {
		records, err = deps.Store.Fetch(ctx, name+"%")
		if err != nil {
			return RunResult{}, err
		}
		logger.Info("definitions fetched", "pattern", name+"%", "rows", len(records))
	}

	userPrompt := prompt.Assemble(prompt.AssembleInput{
		Template:    templates.Template,
		Context:     templates.Context,
		Notebook:    cleaned,
		Filename:    nameExt,
		Definitions: records,
		GeneratedAt: now(),
	})

	logger.Info("calling model", "profile", in.Profile.String(), "notebook", nameExt)
	markdown, err := deps.LLM.Generate(ctx, templates.Context, userPrompt)
	if err != nil {
		return RunResult{}, err
	}

	outputPath, err := deps.Emitter.Emit(name, markdown)
	if err != nil {
		return RunResult{}, err
	}
	logger.Info("documentation written", "path", outputPath)

	return RunResult{OutputPath: outputPath, Definitions: len(records)}, nil
}
