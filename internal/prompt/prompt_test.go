package prompt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doxcer/internal/definitions"
)

func TestProfileFromSelector_KnownFlags(t *testing.T) {
	cases := map[string]Profile{
		"-fabric":      Fabric,
		"-synapse":     Synapse,
		"-databricks":  Databricks,
		"-powerbi":     PowerBi,
		"-aws":         Aws,
		"-datafactory": DataFactory,
	}
	for flag, want := range cases {
		got, ok := ProfileFromSelector(flag)
		require.True(t, ok, flag)
		assert.Equal(t, want, got, flag)
	}
}

func TestProfileFromSelector_UnknownFlag(t *testing.T) {
	_, ok := ProfileFromSelector("-oracle")
	assert.False(t, ok)

	_, ok = ProfileFromSelector("--fabric")
	assert.False(t, ok)
}

func TestProfileFromName_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, Databricks, ProfileFromName("databricks"))
	assert.Equal(t, Databricks, ProfileFromName("  DATABRICKS "))
	assert.Equal(t, Default, ProfileFromName("oracle"))
	assert.Equal(t, Default, ProfileFromName(""))
}

func TestProfileNamesAndStems(t *testing.T) {
	assert.Equal(t, "datafactory", DataFactory.String())
	assert.Equal(t, "datafactory", DataFactory.TemplateStem())
	assert.Equal(t, "default", Default.String())
}

func TestSelectors_CanonicalFlagsOnly(t *testing.T) {
	flags := Selectors()
	assert.Equal(t, []string{"-fabric", "-synapse", "-databricks", "-powerbi", "-aws", "-datafactory"}, flags)
}

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "templates"), 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, "templates", name), []byte(body), 0o644))
	}
	return root
}

func TestLoad_ReadsTemplateAndContext(t *testing.T) {
	root := writeTemplates(t, map[string]string{
		"databricks_prompt.md": "doc {{notebook_code}}",
		"context.md":           "you are a writer",
	})

	set, err := Load(root, Databricks)
	require.NoError(t, err)
	assert.Equal(t, "doc {{notebook_code}}", set.Template)
	assert.Equal(t, "you are a writer", set.Context)
}

func TestLoad_MissingTemplateIsTemplateLoadError(t *testing.T) {
	root := writeTemplates(t, map[string]string{
		"context.md": "you are a writer",
	})

	_, err := Load(root, Synapse)
	require.Error(t, err)

	var tle *TemplateLoadError
	require.ErrorAs(t, err, &tle)
	assert.Contains(t, tle.Path, "synapse_prompt.md")
}

func TestLoad_MissingContextIsTemplateLoadError(t *testing.T) {
	root := writeTemplates(t, map[string]string{
		"default_prompt.md": "body",
	})

	_, err := Load(root, Default)
	var tle *TemplateLoadError
	require.ErrorAs(t, err, &tle)
	assert.Contains(t, tle.Path, "context.md")
}

func TestAssemble_SubstitutesEachPlaceholderOnce(t *testing.T) {
	in := AssembleInput{
		Template:    "File: {{notebook_filename}}\nAt: {{generated_at}}\nDefs:\n{{definitions}}\nCode:\n{{notebook_code}}",
		Notebook:    "x=1\ny=2\nprint(x+y)\n",
		Filename:    "fct_sales.py",
		Definitions: []definitions.Record{{Column: "dim_project_sk", Definition: "Surrogate key"}},
		GeneratedAt: time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC),
	}

	got := Assemble(in)
	assert.Contains(t, got, "File: fct_sales.py")
	assert.Contains(t, got, "At: 2026-08-25 14:30:05")
	assert.Contains(t, got, "| column | definition |")
	assert.Contains(t, got, "| dim_project_sk | Surrogate key |")
	assert.Contains(t, got, "print(x+y)")
	assert.NotContains(t, got, "{{")
}

func TestAssemble_Deterministic(t *testing.T) {
	in := AssembleInput{
		Template:    "{{generated_at}} {{notebook_code}}",
		Notebook:    "x=1",
		Filename:    "a.py",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	first := Assemble(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Assemble(in))
	}
}

func TestAssemble_TimestampNormalizedToUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	in := AssembleInput{
		Template:    "{{generated_at}}",
		GeneratedAt: time.Date(2026, 8, 25, 16, 0, 0, 0, loc),
	}
	assert.Equal(t, "2026-08-25 14:00:00", Assemble(in))
}

func TestAssemble_EmptyDefinitionsOmitsSection(t *testing.T) {
	in := AssembleInput{
		Template:    "before\n{{definitions}}after",
		GeneratedAt: time.Unix(0, 0),
	}
	assert.Equal(t, "before\nafter", Assemble(in))
}

func TestAssemble_PlaceholderFreeTemplateDegrades(t *testing.T) {
	in := AssembleInput{
		Template:    "Write docs in the house style.",
		Notebook:    "x=1\n",
		Filename:    "nb.py",
		GeneratedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}

	got := Assemble(in)
	assert.Contains(t, got, "Current date time: 2026-08-25 10:00:00")
	assert.Contains(t, got, "Notebook filename: nb.py")
	assert.Contains(t, got, "Documentation template: Write docs in the house style.")
	assert.Contains(t, got, "Code: x=1")
	assert.NotContains(t, got, "Definitions:")
}

func TestAssemble_PlaceholderFreeTemplateWithDefinitions(t *testing.T) {
	in := AssembleInput{
		Template:    "plain template",
		Definitions: []definitions.Record{{Column: "c", Definition: "d"}},
		GeneratedAt: time.Unix(0, 0),
	}

	got := Assemble(in)
	assert.Contains(t, got, "Definitions:\n| column | definition |")
}
