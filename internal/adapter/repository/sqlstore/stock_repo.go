package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const stockColumns = `id, wallet_id, code, volume, start_price, start_date, sell_price, sell_date, is_holding, margin, created_at`

type stockRow struct {
	ID         uuid.UUID           `db:"id"`
	WalletID   uuid.UUID           `db:"wallet_id"`
	Code       string              `db:"code"`
	Volume     decimal.Decimal     `db:"volume"`
	StartPrice decimal.Decimal     `db:"start_price"`
	StartDate  time.Time           `db:"start_date"`
	SellPrice  decimal.NullDecimal `db:"sell_price"`
	SellDate   sql.NullTime        `db:"sell_date"`
	IsHolding  bool                `db:"is_holding"`
	Margin     decimal.Decimal     `db:"margin"`
	CreatedAt  time.Time           `db:"created_at"`
}

func newStockRow(p *domain.StockPosition) stockRow {
	row := stockRow{
		ID:         p.ID,
		WalletID:   p.WalletID,
		Code:       p.Code,
		Volume:     p.Volume,
		StartPrice: p.StartPrice,
		StartDate:  p.StartDate.UTC(),
		IsHolding:  p.IsHolding,
		Margin:     p.Margin,
		CreatedAt:  p.CreatedAt.UTC(),
	}
	if p.SellPrice != nil {
		row.SellPrice = decimal.NewNullDecimal(*p.SellPrice)
	}
	if p.SellDate != nil {
		row.SellDate = sql.NullTime{Time: p.SellDate.UTC(), Valid: true}
	}
	return row
}

func (r stockRow) toDomain() *domain.StockPosition {
	p := &domain.StockPosition{
		ID:         r.ID,
		WalletID:   r.WalletID,
		Code:       r.Code,
		Volume:     r.Volume,
		StartPrice: r.StartPrice,
		StartDate:  r.StartDate,
		IsHolding:  r.IsHolding,
		Margin:     r.Margin,
		CreatedAt:  r.CreatedAt,
	}
	if r.SellPrice.Valid {
		sellPrice := r.SellPrice.Decimal
		p.SellPrice = &sellPrice
	}
	if r.SellDate.Valid {
		sellDate := r.SellDate.Time
		p.SellDate = &sellDate
	}
	return p
}

// stockRepository implements domain.StockRepository
type stockRepository struct {
	q sqlx.ExtContext
}

// GetByID retrieves a stock position by its ID
func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockPosition, error) {
	var row stockRow
	query := r.q.Rebind(`SELECT ` + stockColumns + ` FROM stocks WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("stock", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves stock positions, optionally restricted to one wallet
func (r *stockRepository) List(ctx context.Context, walletID *uuid.UUID) ([]*domain.StockPosition, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks`
	var args []interface{}
	if walletID != nil {
		query += ` WHERE wallet_id = ?`
		args = append(args, *walletID)
	}
	query += ` ORDER BY start_date DESC, created_at DESC`

	var rows []stockRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, unavailable("failed to list stocks", err)
	}

	positions := make([]*domain.StockPosition, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, row.toDomain())
	}
	return positions, nil
}

// Create creates a new stock position
func (r *stockRepository) Create(ctx context.Context, stock *domain.StockPosition) error {
	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES (:id, :wallet_id, :code, :volume, :start_price, :start_date, :sell_price, :sell_date, :is_holding, :margin, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newStockRow(stock)); err != nil {
		return unavailable("failed to insert stock", err)
	}
	return nil
}

// Update persists every field of an existing stock position
func (r *stockRepository) Update(ctx context.Context, stock *domain.StockPosition) error {
	query := `
		UPDATE stocks
		SET wallet_id = :wallet_id, code = :code, volume = :volume, start_price = :start_price,
			start_date = :start_date, sell_price = :sell_price, sell_date = :sell_date,
			is_holding = :is_holding, margin = :margin
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newStockRow(stock))
	return expectOne("stock", stock.ID, res, err)
}

// Delete removes a stock position
func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM stocks WHERE id = ?`), id)
	return expectOne("stock", id, res, err)
}
