package db

import "context"

// TransactionFunc runs inside a transaction. Store calls made with the
// supplied ctx join that transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}
