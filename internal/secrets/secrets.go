// Package secrets resolves runtime credentials from Azure Key Vault.
// Nothing sensitive lives in the env files; they only carry secret names.
package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// Source resolves a named secret to its value.
type Source interface {
	Secret(ctx context.Context, name string) (string, error)
}

var _ Source = (*Vault)(nil)

// Vault is a Key Vault backed Source.
type Vault struct {
	client *azsecrets.Client
}

// NewVault connects to the vault at baseURL using the default credential
// chain (environment, workload identity, managed identity, az CLI).
func NewVault(baseURL string) (*Vault, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("key vault credential: %w", err)
	}
	client, err := azsecrets.NewClient(baseURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client: %w", err)
	}
	return &Vault{client: client}, nil
}

// Secret fetches the latest version of the named secret. The value is
// trimmed; an empty value is treated as a missing secret.
func (v *Vault) Secret(ctx context.Context, name string) (string, error) {
	resp, err := v.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("fetch secret %q: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %q has no value", name)
	}
	value := strings.TrimSpace(*resp.Value)
	if value == "" {
		return "", fmt.Errorf("secret %q is empty", name)
	}
	return value, nil
}
