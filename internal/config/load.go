package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envFiles are loaded in order from <root>/config. system.env comes first
// and is parsed by hand; the rest are dotenv files.
var envFiles = []string{
	"system.env",
	"definitions.env",
	"azure_key_vault.env",
	"ai_model.env",
}

// Load reads the four env files under <root>/config into the process
// environment, then populates and validates the Config. Priority is
// process ENV > env file > tag default. Every file must exist; a missing
// one means the setup script has not been run.
func Load(root string) (*Config, error) {
	configDir := filepath.Join(root, "config")

	for _, name := range envFiles {
		path := filepath.Join(configDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("missing env file %s; run the setup script to generate runtime configuration", path)
		}

		if name == "system.env" {
			if _, ok := parseSystemEnvRoot(path); !ok {
				return nil, fmt.Errorf("invalid system env file %s: missing %s", path, envRootOverride)
			}
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}
	return &cfg, nil
}
