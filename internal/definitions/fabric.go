package definitions

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/microsoft/go-mssqldb/azuread"

	"doxcer/internal/secrets"
)

var _ Store = (*FabricStore)(nil)

// FabricConfig carries everything needed to reach the Fabric SQL endpoint.
// The endpoint, client id, and password fields name Key Vault secrets, not
// values.
type FabricConfig struct {
	Database       string
	EndpointSecret string
	ClientIDSecret string
	PasswordSecret string
	BatchSize      int
	MaxByteSize    int
}

// FabricStore reads the definitions table in a Fabric SQL database.
//
// The SELECT text is loaded from sql/fetch_fabric_definitions.sql under the
// repository root and carries a single bound parameter (@p1), so the caller's
// LIKE pattern is never concatenated into SQL text.
type FabricStore struct {
	db          *sql.DB
	query       string
	batchSize   int
	maxByteSize int
}

// OpenFabric resolves the connection secrets, opens the database, and loads
// the query text. Connection-level failures come back as *FetchError with
// KindConnection.
func OpenFabric(ctx context.Context, root string, cfg FabricConfig, vault secrets.Source) (*FabricStore, error) {
	endpoint, err := vault.Secret(ctx, cfg.EndpointSecret)
	if err != nil {
		return nil, &FetchError{Kind: KindConnection, Err: err}
	}
	clientID, err := vault.Secret(ctx, cfg.ClientIDSecret)
	if err != nil {
		return nil, &FetchError{Kind: KindConnection, Err: err}
	}
	password, err := vault.Secret(ctx, cfg.PasswordSecret)
	if err != nil {
		return nil, &FetchError{Kind: KindConnection, Err: err}
	}

	query, err := os.ReadFile(filepath.Join(root, "sql", "fetch_fabric_definitions.sql"))
	if err != nil {
		return nil, &FetchError{Kind: KindQuery, Err: fmt.Errorf("read query file: %w", err)}
	}

	dsn := fmt.Sprintf(
		"server=%s;port=1433;database=%s;fedauth=ActiveDirectoryServicePrincipal;user id=%s;password=%s;encrypt=true;TrustServerCertificate=true",
		endpoint, cfg.Database, clientID, password,
	)

	db, err := sql.Open(azuread.DriverName, dsn)
	if err != nil {
		return nil, &FetchError{Kind: KindConnection, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &FetchError{Kind: KindConnection, Err: err}
	}

	return newFabricStore(db, string(query), cfg.BatchSize, cfg.MaxByteSize), nil
}

// newFabricStore wires a store over an already-open database. Split out so
// tests can run the same scan path against an embedded database.
func newFabricStore(db *sql.DB, query string, batchSize, maxByteSize int) *FabricStore {
	if batchSize <= 0 {
		batchSize = 200
	}
	if maxByteSize <= 0 {
		maxByteSize = 4096
	}
	return &FabricStore{db: db, query: query, batchSize: batchSize, maxByteSize: maxByteSize}
}

// Fetch runs the definitions query with pattern bound as @p1. Oversized
// fields are silently truncated at the configured byte cap.
func (s *FabricStore) Fetch(ctx context.Context, pattern string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, s.query, sql.Named("p1", pattern))
	if err != nil {
		return nil, &FetchError{Kind: KindQuery, Err: err}
	}
	defer rows.Close()

	out := make([]Record, 0, s.batchSize)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Column, &rec.Definition); err != nil {
			return nil, &FetchError{Kind: KindQuery, Err: err}
		}
		rec.Column = s.cap(rec.Column)
		rec.Definition = s.cap(rec.Definition)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &FetchError{Kind: KindQuery, Err: err}
	}
	return out, nil
}

func (s *FabricStore) cap(field string) string {
	if len(field) > s.maxByteSize {
		return field[:s.maxByteSize]
	}
	return field
}

func (s *FabricStore) Close() error {
	return s.db.Close()
}
