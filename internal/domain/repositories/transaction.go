package repositories

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_transaction_manager.go -package=mocks nicenote/internal/domain/repositories TransactionManager

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error

	// ExecSavepoint executes fn inside a savepoint of the transaction carried by ctx.
	// A failing fn rolls back only the savepoint; the enclosing transaction stays usable.
	// Without a transaction in ctx it behaves like ExecTx.
	ExecSavepoint(ctx context.Context, fn TxFn) error
}
