package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownVars = []string{
	"ABSOLUTE_DOXCER_PATH",
	"AI_ENABLED", "AI_PROVIDER", "AI_BASE_URL", "AI_MODEL", "AI_VERSION", "AI_TASK",
	"AKV_ENABLED", "AKV_BASE_URL", "AKV_SECRET_AI",
	"DEFINITION_DATABASE_ENABLED",
	"DEFINITION_FABRIC_DATABASE_ENABLED", "DEFINITION_FABRIC_DATABASE",
	"AKV_SECRET_DEFINITION_FABRIC_ENDPOINT",
	"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_CLIENT",
	"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_PASSWORD",
	"DEFINITION_AZURE_DATABASE_ENABLED", "DEFINITION_AZURE_DATABASE",
	"AKV_SECRET_DEFINITION_AZURE_ENDPOINT",
	"AKV_SECRET_DEFINITION_AZURE_SERVICE_PRINCIPAL_CLIENT",
	"AKV_SECRET_DEFINITION_AZURE_SERVICE_PRINCIPAL_PASSWORD",
	"ODBC_BATCH_SIZE", "ODBC_MAX_BYTE_SIZE",
	"LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every doxcer variable for the duration of the test, since
// godotenv never overrides values already present in the process.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range knownVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "templates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module doxcer\n"), 0o644))

	defaults := map[string]string{
		"system.env":          "ABSOLUTE_DOXCER_PATH=" + root + "\n",
		"definitions.env":     "DEFINITION_DATABASE_ENABLED=false\n",
		"azure_key_vault.env": "AKV_ENABLED=true\nAKV_BASE_URL=https://kv.vault.azure.net\nAKV_SECRET_AI=ai-api-key\n",
		"ai_model.env":        "AI_ENABLED=true\nAI_BASE_URL=https://ai.example.net\nAI_MODEL=doc-writer-1\nAI_VERSION=2024-05-01\nAI_TASK=completions\n",
	}
	for name, body := range files {
		defaults[name] = body
	}
	for name, body := range defaults {
		require.NoError(t, os.WriteFile(filepath.Join(root, "config", name), []byte(body), 0o644))
	}
	return root
}

func TestLoad_HappyPath(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, nil)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "foundry", cfg.AI.Provider)
	assert.Equal(t, "doc-writer-1", cfg.AI.Model)
	assert.Equal(t, "ai-api-key", cfg.KeyVault.AISecret)
	assert.False(t, cfg.Definitions.Enabled)
	assert.Equal(t, 200, cfg.ODBC.BatchSize)
	assert.Equal(t, 4096, cfg.ODBC.MaxByteSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, nil)
	t.Setenv("AI_MODEL", "from-process-env")
	t.Setenv("ODBC_BATCH_SIZE", "50")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "from-process-env", cfg.AI.Model)
	assert.Equal(t, 50, cfg.ODBC.BatchSize)
}

func TestLoad_MissingEnvFileFails(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, nil)
	require.NoError(t, os.Remove(filepath.Join(root, "config", "ai_model.env")))

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai_model.env")
}

func TestLoad_SystemEnvWithoutMappingFails(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, map[string]string{"system.env": "# nothing here\n"})

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system.env")
}

func TestLoad_FabricBackend(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, map[string]string{
		"definitions.env": "DEFINITION_DATABASE_ENABLED=true\n" +
			"DEFINITION_FABRIC_DATABASE_ENABLED=true\n" +
			"DEFINITION_FABRIC_DATABASE=lakehouse_meta\n" +
			"AKV_SECRET_DEFINITION_FABRIC_ENDPOINT=fabric-sql-endpoint\n" +
			"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_CLIENT=fabric-sp-client\n" +
			"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_PASSWORD=fabric-sp-password\n",
	})

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.True(t, cfg.Definitions.Enabled)
	assert.True(t, cfg.Definitions.Fabric.Complete())
	assert.Equal(t, "lakehouse_meta", cfg.Definitions.Fabric.Database)
}

func TestLoad_DefinitionsEnabledWithoutBackendFails(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, map[string]string{
		"definitions.env": "DEFINITION_DATABASE_ENABLED=true\n",
	})

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no backend")
}

func TestValidate_AIDisabledFails(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())
}

func TestValidate_FoundryRequiresEndpointFields(t *testing.T) {
	cfg := &Config{
		AI:       AIConfig{Enabled: true, Provider: "foundry", Model: "m"},
		KeyVault: KeyVaultConfig{Enabled: true, BaseURL: "https://kv", AISecret: "s"},
		ODBC:     ODBCConfig{BatchSize: 200, MaxByteSize: 4096},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_BASE_URL")
}

func TestValidate_GeminiNeedsOnlyModel(t *testing.T) {
	cfg := &Config{
		AI:       AIConfig{Enabled: true, Provider: "gemini", Model: "gemini-pro"},
		KeyVault: KeyVaultConfig{Enabled: true, BaseURL: "https://kv", AISecret: "s"},
		ODBC:     ODBCConfig{BatchSize: 200, MaxByteSize: 4096},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnsupportedProviderFails(t *testing.T) {
	cfg := &Config{
		AI: AIConfig{Enabled: true, Provider: "watson", Model: "m"},
	}
	assert.Error(t, cfg.Validate())
}

func TestFindRoot_EnvOverride(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, nil)
	t.Setenv("ABSOLUTE_DOXCER_PATH", root)

	got, err := FindRoot()
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_AncestorWalk(t *testing.T) {
	clearEnv(t)
	root := writeRepo(t, nil)
	nested := filepath.Join(root, "notebooks", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(cwd) })
	require.NoError(t, os.Chdir(nested))

	got, err := FindRoot()
	require.NoError(t, err)
	assert.Equal(t, resolveSymlinks(t, root), resolveSymlinks(t, got))
}

func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	// t.TempDir may sit behind a symlink (macOS /var -> /private/var)
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func TestParseSystemEnvRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.env")
	require.NoError(t, os.WriteFile(path, []byte("# generated\nABSOLUTE_DOXCER_PATH=\"/opt/doxcer\"\n"), 0o644))

	got, ok := parseSystemEnvRoot(path)
	require.True(t, ok)
	assert.Equal(t, "/opt/doxcer", got)

	_, ok = parseSystemEnvRoot(filepath.Join(dir, "missing.env"))
	assert.False(t, ok)
}
