package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the category of a tracked asset
type AssetType string

const (
	AssetTypeMoney  AssetType = "Money"
	AssetTypeBank   AssetType = "Bank"
	AssetTypeGold   AssetType = "Gold"
	AssetTypeCrypto AssetType = "Crypto"
	AssetTypeStock  AssetType = "Stock"
	AssetTypeLoan   AssetType = "Loan"
)

// AssetTypes lists every asset type in display order
var AssetTypes = []AssetType{
	AssetTypeMoney,
	AssetTypeBank,
	AssetTypeGold,
	AssetTypeCrypto,
	AssetTypeStock,
	AssetTypeLoan,
}

// IsValid reports whether t is one of the known asset types
func (t AssetType) IsValid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultCurrency is used for assets created without a currency
const DefaultCurrency = "USD"

// Asset represents a holding tracked outside the wallets (gold, crypto, loans...).
// Value is the asset's worth; Loan assets count against net worth.
type Asset struct {
	ID        uuid.UUID
	Type      AssetType
	Name      string
	Amount    decimal.Decimal // units held
	Value     decimal.Decimal
	Currency  string
	Notes     string
	Date      time.Time
	CreatedAt time.Time
}

// SignedValue is the asset's contribution to the portfolio total
func (a *Asset) SignedValue() decimal.Decimal {
	if a.Type == AssetTypeLoan {
		return a.Value.Neg()
	}
	return a.Value
}

// Validate ensures the asset adheres to domain rules
func (a *Asset) Validate() error {
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: asset type must be one of %v", ErrInvalidArgument, AssetTypes)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: asset name cannot be empty", ErrInvalidArgument)
	}
	return nil
}
