package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"nicenote/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	return tm.run(ctx, tx, fn)
}

// ExecSavepoint runs fn inside a savepoint of the transaction in ctx.
func (tm *TransactionManager) ExecSavepoint(ctx context.Context, fn repositories.TxFn) error {
	outer := repositories.GetTx(ctx)
	if outer == nil {
		return tm.ExecTx(ctx, fn)
	}

	// Begin on a pgx.Tx issues SAVEPOINT; Rollback/Commit map to ROLLBACK TO / RELEASE
	sp, err := outer.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}
	return tm.run(ctx, sp, fn)
}

func (tm *TransactionManager) run(ctx context.Context, tx pgx.Tx, fn repositories.TxFn) error {
	// Safe even after a successful commit
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
