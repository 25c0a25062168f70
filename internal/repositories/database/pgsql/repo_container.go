package pgsql

import (
	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Store: NewPgxKVRepository(dbPool),
	}
}
