package unitofwork

import "context"

// RepositoryFactory hands out a fresh UnitOfWork per lead write, export or seed run.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
