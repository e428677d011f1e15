package unitofwork

import (
	"context"

	"ai-style-review-be/internal/repository/contract"
)

// UnitOfWork scopes repositories to one optional transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ReferenceExampleRepository() contract.ReferenceExampleRepository
}
