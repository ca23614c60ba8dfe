package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Options selects and configures a provider. APIKey is resolved from Key
// Vault by the caller; it never appears in configuration files.
type Options struct {
	Provider string
	BaseURL  string
	Model    string
	Version  string
	Task     string
	APIKey   string
	Timeout  time.Duration
}

// New builds the configured provider. An empty provider name means foundry.
func New(ctx context.Context, opts Options) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "foundry"
	}

	switch provider {
	case "foundry":
		return NewFoundry(FoundryConfig{
			BaseURL: opts.BaseURL,
			Model:   opts.Model,
			Version: opts.Version,
			Task:    opts.Task,
			APIKey:  opts.APIKey,
			Timeout: opts.Timeout,
		})
	case "gemini":
		return NewGemini(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", opts.Provider)
	}
}
