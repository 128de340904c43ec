package asset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/identity"
)

// CreateAssetInput represents the input for tracking a new asset
type CreateAssetInput struct {
	Type     domain.AssetType
	Name     string
	Amount   decimal.Decimal
	Value    decimal.Decimal
	Currency string
	Notes    string
	Date     time.Time
}

// UpdateAssetInput represents an edit of an asset. Nil fields are left unchanged.
type UpdateAssetInput struct {
	Type     *domain.AssetType
	Name     *string
	Amount   *decimal.Decimal
	Value    *decimal.Decimal
	Currency *string
	Notes    *string
	Date     *time.Time
}

// AssetService handles asset catalog operations
type AssetService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewAssetService creates a new AssetService instance
func NewAssetService(store domain.Store, logger logrus.FieldLogger) *AssetService {
	return &AssetService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateAsset starts tracking an asset
func (s *AssetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	date := input.Date
	if date.IsZero() {
		date = s.Now()
	}

	asset := &domain.Asset{
		ID:        uuid.New(),
		Type:      input.Type,
		Name:      input.Name,
		Amount:    input.Amount,
		Value:     input.Value,
		Currency:  currency,
		Notes:     input.Notes,
		Date:      date.UTC(),
		CreatedAt: s.Now().UTC(),
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Assets().Create(ctx, asset); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":   identity.FromContext(ctx).Subject,
		"asset_id": asset.ID,
		"type":     asset.Type,
	}).Info("asset created")
	return asset, nil
}

// GetAsset retrieves an asset by its ID
func (s *AssetService) GetAsset(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	return s.Store.Assets().GetByID(ctx, id)
}

// ListAssets retrieves every asset, most recent date first.
// A storage failure degrades to an empty list.
func (s *AssetService) ListAssets(ctx context.Context) domain.Result[[]*domain.Asset] {
	assets, err := s.Store.Assets().List(ctx)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list assets, returning empty list")
		return domain.Degraded([]*domain.Asset{}, err)
	}
	return domain.Ok(assets)
}

// UpdateAsset edits an asset
func (s *AssetService) UpdateAsset(ctx context.Context, id uuid.UUID, input UpdateAssetInput) (*domain.Asset, error) {
	var updated *domain.Asset
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		asset, err := repos.Assets().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Type != nil {
			asset.Type = *input.Type
		}
		if input.Name != nil {
			asset.Name = *input.Name
		}
		if input.Amount != nil {
			asset.Amount = *input.Amount
		}
		if input.Value != nil {
			asset.Value = *input.Value
		}
		if input.Currency != nil {
			asset.Currency = *input.Currency
		}
		if input.Notes != nil {
			asset.Notes = *input.Notes
		}
		if input.Date != nil {
			asset.Date = input.Date.UTC()
		}

		if err := asset.Validate(); err != nil {
			return err
		}
		if err := repos.Assets().Update(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAsset stops tracking an asset
func (s *AssetService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if err := s.Store.Assets().Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":   identity.FromContext(ctx).Subject,
		"asset_id": id,
	}).Info("asset deleted")
	return nil
}
