package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const assetColumns = `id, type, name, amount, value, currency, notes, date, created_at`

type assetRow struct {
	ID        uuid.UUID       `db:"id"`
	Type      string          `db:"type"`
	Name      string          `db:"name"`
	Amount    decimal.Decimal `db:"amount"`
	Value     decimal.Decimal `db:"value"`
	Currency  string          `db:"currency"`
	Notes     string          `db:"notes"`
	Date      time.Time       `db:"date"`
	CreatedAt time.Time       `db:"created_at"`
}

func newAssetRow(a *domain.Asset) assetRow {
	return assetRow{
		ID:        a.ID,
		Type:      string(a.Type),
		Name:      a.Name,
		Amount:    a.Amount,
		Value:     a.Value,
		Currency:  a.Currency,
		Notes:     a.Notes,
		Date:      a.Date.UTC(),
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func (r assetRow) toDomain() *domain.Asset {
	return &domain.Asset{
		ID:        r.ID,
		Type:      domain.AssetType(r.Type),
		Name:      r.Name,
		Amount:    r.Amount,
		Value:     r.Value,
		Currency:  r.Currency,
		Notes:     r.Notes,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	q sqlx.ExtContext
}

func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	var row assetRow
	query := r.q.Rebind(`SELECT ` + assetColumns + ` FROM assets WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("asset", id, err)
	}
	return row.toDomain(), nil
}

func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	var rows []assetRow
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY date DESC, created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, unavailable("failed to list assets", err)
	}

	assets := make([]*domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.toDomain())
	}
	return assets, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES (:id, :type, :name, :amount, :value, :currency, :notes, :date, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newAssetRow(asset)); err != nil {
		return unavailable("failed to insert asset", err)
	}
	return nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET type = :type, name = :name, amount = :amount, value = :value,
			currency = :currency, notes = :notes, date = :date
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newAssetRow(asset))
	return expectOne("asset", asset.ID, res, err)
}

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM assets WHERE id = ?`), id)
	return expectOne("asset", id, res, err)
}
