package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const transactionColumns = `id, type, amount, description, category, wallet_id, date, created_at`

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	WalletID    uuid.NullUUID   `db:"wallet_id"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func newTransactionRow(tx *domain.Transaction) transactionRow {
	row := transactionRow{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		Date:        tx.Date.UTC(),
		CreatedAt:   tx.CreatedAt.UTC(),
	}
	if tx.HasWallet() {
		row.WalletID = uuid.NullUUID{UUID: *tx.WalletID, Valid: true}
	}
	return row
}

func (r transactionRow) toDomain() *domain.Transaction {
	tx := &domain.Transaction{
		ID:          r.ID,
		Type:        domain.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
	if r.WalletID.Valid {
		walletID := r.WalletID.UUID
		tx.WalletID = &walletID
	}
	return tx
}

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	q sqlx.ExtContext
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var row transactionRow
	query := r.q.Rebind(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("transaction", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves all transactions, most recent date first
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	var rows []transactionRow
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC, created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, unavailable("failed to list transactions", err)
	}

	txs := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.toDomain())
	}
	return txs, nil
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (:id, :type, :amount, :description, :category, :wallet_id, :date, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newTransactionRow(tx)); err != nil {
		return unavailable("failed to insert transaction", err)
	}
	return nil
}

// Update persists the editable fields of a transaction. The wallet link is never rewritten.
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET type = :type, amount = :amount, description = :description, category = :category, date = :date
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newTransactionRow(tx))
	return expectOne("transaction", tx.ID, res, err)
}

// Delete removes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM transactions WHERE id = ?`), id)
	return expectOne("transaction", id, res, err)
}
