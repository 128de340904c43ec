package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const walletColumns = `id, name, type, detail, balance, cash, investment_value, gross_balance, margin, loan, not_mine, created_at`

type walletRow struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Type            string          `db:"type"`
	Detail          string          `db:"detail"`
	Balance         decimal.Decimal `db:"balance"`
	Cash            decimal.Decimal `db:"cash"`
	InvestmentValue decimal.Decimal `db:"investment_value"`
	GrossBalance    decimal.Decimal `db:"gross_balance"`
	Margin          decimal.Decimal `db:"margin"`
	Loan            decimal.Decimal `db:"loan"`
	NotMine         bool            `db:"not_mine"`
	CreatedAt       time.Time       `db:"created_at"`
}

func newWalletRow(w *domain.Wallet) walletRow {
	return walletRow{
		ID:              w.ID,
		Name:            w.Name,
		Type:            string(w.Type),
		Detail:          w.Detail,
		Balance:         w.Balance,
		Cash:            w.Cash,
		InvestmentValue: w.InvestmentValue,
		GrossBalance:    w.GrossBalance,
		Margin:          w.Margin,
		Loan:            w.Loan,
		NotMine:         w.NotMine,
		CreatedAt:       w.CreatedAt.UTC(),
	}
}

func (r walletRow) toDomain() *domain.Wallet {
	return &domain.Wallet{
		ID:              r.ID,
		Name:            r.Name,
		Type:            domain.WalletType(r.Type),
		Detail:          r.Detail,
		Balance:         r.Balance,
		Cash:            r.Cash,
		InvestmentValue: r.InvestmentValue,
		GrossBalance:    r.GrossBalance,
		Margin:          r.Margin,
		Loan:            r.Loan,
		NotMine:         r.NotMine,
		CreatedAt:       r.CreatedAt,
	}
}

// walletRepository implements domain.WalletRepository
type walletRepository struct {
	q    sqlx.ExtContext
	lock bool // append FOR UPDATE to single-row reads
}

// GetByID retrieves a wallet by its ID
func (r *walletRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = ?`
	if r.lock {
		query += ` FOR UPDATE`
	}

	var row walletRow
	if err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(query), id); err != nil {
		return nil, lookupErr("wallet", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves all wallets, newest first
func (r *walletRepository) List(ctx context.Context) ([]*domain.Wallet, error) {
	var rows []walletRow
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY created_at DESC, name`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, unavailable("failed to list wallets", err)
	}

	wallets := make([]*domain.Wallet, 0, len(rows))
	for _, row := range rows {
		wallets = append(wallets, row.toDomain())
	}
	return wallets, nil
}

// Create creates a new wallet
func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES (:id, :name, :type, :detail, :balance, :cash, :investment_value, :gross_balance, :margin, :loan, :not_mine, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newWalletRow(wallet)); err != nil {
		return unavailable("failed to insert wallet", err)
	}
	return nil
}

// Update persists every field of an existing wallet
func (r *walletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = :name, detail = :detail, balance = :balance, cash = :cash,
			investment_value = :investment_value, gross_balance = :gross_balance,
			margin = :margin, loan = :loan, not_mine = :not_mine
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newWalletRow(wallet))
	return expectOne("wallet", wallet.ID, res, err)
}

// Delete removes a wallet
func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM wallets WHERE id = ?`), id)
	return expectOne("wallet", id, res, err)
}
