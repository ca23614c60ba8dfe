package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds the single blocking model call.
const DefaultTimeout = 300 * time.Second

var _ Client = (*Foundry)(nil)

// FoundryConfig configures the Azure AI Foundry chat endpoint.
type FoundryConfig struct {
	BaseURL string
	Model   string
	Version string // api-version query parameter
	Task    string // chat task segment of the endpoint path
	APIKey  string
	Timeout time.Duration
}

// Foundry calls <base>/models/chat/<task>?api-version=<version> with the
// api-key header.
type Foundry struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewFoundry validates the endpoint configuration and builds the client.
func NewFoundry(cfg FoundryConfig) (*Foundry, error) {
	for name, v := range map[string]string{
		"base url":    cfg.BaseURL,
		"model":       cfg.Model,
		"api version": cfg.Version,
		"task":        cfg.Task,
		"api key":     cfg.APIKey,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("foundry: %s is required", name)
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	endpoint := fmt.Sprintf("%s/models/chat/%s?api-version=%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Task, cfg.Version)

	return &Foundry{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
	}, nil
}

// Generate posts one chat request: the context fragment as the system
// message, the assembled prompt as the user message. The completion content
// is returned verbatim.
func (f *Foundry) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: f.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", &UpstreamError{Provider: "foundry", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Provider: "foundry", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Provider: "foundry", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Provider: "foundry", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Provider: "foundry", Err: fmt.Errorf(
			"request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Provider: "foundry", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Provider: "foundry", Err: fmt.Errorf("response has no choices")}
	}

	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &UpstreamError{Provider: "foundry", Err: fmt.Errorf("response content is empty")}
	}
	return content, nil
}
