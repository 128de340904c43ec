package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// Store implements domain.Store on top of a sqlx connection
type Store struct {
	db *DB
}

// NewStore creates a new store
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) Wallets() domain.WalletRepository {
	return &walletRepository{q: s.db}
}

func (s *Store) Transactions() domain.TransactionRepository {
	return &transactionRepository{q: s.db}
}

func (s *Store) Stocks() domain.StockRepository {
	return &stockRepository{q: s.db}
}

func (s *Store) Assets() domain.AssetRepository {
	return &assetRepository{q: s.db}
}

func (s *Store) BudgetPlans() domain.BudgetPlanRepository {
	return &budgetPlanRepository{q: s.db}
}

func (s *Store) Notes() domain.NoteRepository {
	return &noteRepository{q: s.db}
}

func (s *Store) Tasks() domain.TaskRepository {
	return &taskRepository{q: s.db}
}

// Atomic runs fn inside a database transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable("failed to begin transaction", err)
	}
	defer tx.Rollback()

	repos := &txRepositories{tx: tx, lock: s.db.IsPostgres()}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return unavailable("failed to commit transaction", err)
	}
	return nil
}

// txRepositories hands out repositories bound to one database transaction.
// On PostgreSQL, wallet reads take a row lock; SQLite serializes writers at BEGIN instead.
type txRepositories struct {
	tx   *sqlx.Tx
	lock bool
}

func (r *txRepositories) Wallets() domain.WalletRepository {
	return &walletRepository{q: r.tx, lock: r.lock}
}

func (r *txRepositories) Transactions() domain.TransactionRepository {
	return &transactionRepository{q: r.tx}
}

func (r *txRepositories) Stocks() domain.StockRepository {
	return &stockRepository{q: r.tx}
}

func (r *txRepositories) Assets() domain.AssetRepository {
	return &assetRepository{q: r.tx}
}

func (r *txRepositories) BudgetPlans() domain.BudgetPlanRepository {
	return &budgetPlanRepository{q: r.tx}
}

func (r *txRepositories) Notes() domain.NoteRepository {
	return &noteRepository{q: r.tx}
}

func (r *txRepositories) Tasks() domain.TaskRepository {
	return &taskRepository{q: r.tx}
}

// unavailable wraps a driver failure as domain.ErrStorageUnavailable
func unavailable(action string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, action, err)
}

// lookupErr maps a single-row read failure to a domain error
func lookupErr(entity string, id fmt.Stringer, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return unavailable("failed to get "+entity, err)
}

// expectOne maps an UPDATE or DELETE result to ErrNotFound when no row matched
func expectOne(entity string, id fmt.Stringer, res sql.Result, err error) error {
	if err != nil {
		return unavailable("failed to write "+entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("failed to write "+entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
