// Package config builds the immutable runtime configuration from the four
// split env files under <root>/config. The struct is constructed once at
// startup and passed by reference; no component reads the environment after
// that.
package config

import (
	"fmt"
	"strings"
)

// Config is the root runtime configuration.
type Config struct {
	AI          AIConfig
	KeyVault    KeyVaultConfig
	Definitions DefinitionsConfig
	ODBC        ODBCConfig
	Log         LogConfig
}

// AIConfig describes the model endpoint (ai_model.env).
type AIConfig struct {
	Enabled  bool   `env:"AI_ENABLED" env-default:"false"`
	Provider string `env:"AI_PROVIDER" env-default:"foundry"`
	BaseURL  string `env:"AI_BASE_URL"`
	Model    string `env:"AI_MODEL"`
	Version  string `env:"AI_VERSION"`
	Task     string `env:"AI_TASK"`
}

// KeyVaultConfig describes the vault holding every runtime secret
// (azure_key_vault.env). AISecret names the secret carrying the model API
// key.
type KeyVaultConfig struct {
	Enabled  bool   `env:"AKV_ENABLED" env-default:"false"`
	BaseURL  string `env:"AKV_BASE_URL"`
	AISecret string `env:"AKV_SECRET_AI"`
}

// DefinitionsConfig gates the definitions lookup (definitions.env).
type DefinitionsConfig struct {
	Enabled bool `env:"DEFINITION_DATABASE_ENABLED" env-default:"false"`
	Fabric  FabricBackendConfig
	Azure   AzureBackendConfig
}

// FabricBackendConfig names the Fabric SQL database and the Key Vault
// secrets holding its connection credentials.
type FabricBackendConfig struct {
	Enabled        bool   `env:"DEFINITION_FABRIC_DATABASE_ENABLED" env-default:"false"`
	Database       string `env:"DEFINITION_FABRIC_DATABASE"`
	EndpointSecret string `env:"AKV_SECRET_DEFINITION_FABRIC_ENDPOINT"`
	ClientIDSecret string `env:"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_CLIENT"`
	PasswordSecret string `env:"AKV_SECRET_DEFINITION_FABRIC_SERVICE_PRINCIPAL_PASSWORD"`
}

// AzureBackendConfig mirrors the Fabric shape for the Azure SQL backend.
type AzureBackendConfig struct {
	Enabled        bool   `env:"DEFINITION_AZURE_DATABASE_ENABLED" env-default:"false"`
	Database       string `env:"DEFINITION_AZURE_DATABASE"`
	EndpointSecret string `env:"AKV_SECRET_DEFINITION_AZURE_ENDPOINT"`
	ClientIDSecret string `env:"AKV_SECRET_DEFINITION_AZURE_SERVICE_PRINCIPAL_CLIENT"`
	PasswordSecret string `env:"AKV_SECRET_DEFINITION_AZURE_SERVICE_PRINCIPAL_PASSWORD"`
}

// ODBCConfig bounds the definitions row fetch.
type ODBCConfig struct {
	BatchSize   int `env:"ODBC_BATCH_SIZE" env-default:"200"`
	MaxByteSize int `env:"ODBC_MAX_BYTE_SIZE" env-default:"4096"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Complete reports whether the Fabric backend has everything it needs.
func (c FabricBackendConfig) Complete() bool {
	return c.Enabled &&
		strings.TrimSpace(c.Database) != "" &&
		strings.TrimSpace(c.EndpointSecret) != "" &&
		strings.TrimSpace(c.ClientIDSecret) != "" &&
		strings.TrimSpace(c.PasswordSecret) != ""
}

// Validate enforces the startup invariants. The tool cannot run without the
// model endpoint, and the API key only comes from the vault, so both must be
// enabled and complete.
func (c *Config) Validate() error {
	if !c.AI.Enabled {
		return fmt.Errorf("AI model is disabled (AI_ENABLED)")
	}
	switch strings.ToLower(strings.TrimSpace(c.AI.Provider)) {
	case "", "foundry":
		if err := requireAll(map[string]string{
			"AI_BASE_URL": c.AI.BaseURL,
			"AI_MODEL":    c.AI.Model,
			"AI_VERSION":  c.AI.Version,
			"AI_TASK":     c.AI.Task,
		}); err != nil {
			return err
		}
	case "gemini":
		if strings.TrimSpace(c.AI.Model) == "" {
			return fmt.Errorf("AI model configuration missing AI_MODEL")
		}
	default:
		return fmt.Errorf("unsupported AI provider %q", c.AI.Provider)
	}

	if !c.KeyVault.Enabled {
		return fmt.Errorf("key vault is disabled (AKV_ENABLED)")
	}
	if strings.TrimSpace(c.KeyVault.BaseURL) == "" || strings.TrimSpace(c.KeyVault.AISecret) == "" {
		return fmt.Errorf("key vault configuration missing AKV_BASE_URL or AKV_SECRET_AI")
	}

	if c.Definitions.Enabled && !c.Definitions.Fabric.Complete() && !c.Definitions.Azure.Enabled {
		return fmt.Errorf("definitions lookup is enabled but no backend is configured")
	}

	if c.ODBC.BatchSize <= 0 {
		return fmt.Errorf("ODBC_BATCH_SIZE must be positive")
	}
	if c.ODBC.MaxByteSize <= 0 {
		return fmt.Errorf("ODBC_MAX_BYTE_SIZE must be positive")
	}

	return nil
}

func requireAll(fields map[string]string) error {
	// stable order for error messages
	for _, name := range []string{"AI_BASE_URL", "AI_MODEL", "AI_VERSION", "AI_TASK"} {
		if v, ok := fields[name]; ok && strings.TrimSpace(v) == "" {
			return fmt.Errorf("AI model configuration missing %s", name)
		}
	}
	return nil
}
