package definitions

import "context"

var _ Store = AzureStore{}

// AzureStore is the Azure SQL backend. The query contract is identical to
// Fabric (sql/fetch_azure_definitions.sql is already in place), but the
// connection path has not been built; every Fetch fails with
// ErrNotImplemented.
type AzureStore struct{}

func (AzureStore) Fetch(ctx context.Context, pattern string) ([]Record, error) {
	return nil, ErrNotImplemented
}
