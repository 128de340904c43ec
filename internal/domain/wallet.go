package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType represents the kind of wallet, which decides how money moving in and out
// of it changes its numeric fields
type WalletType string

const (
	WalletTypeCash    WalletType = "Cash"
	WalletTypeBank    WalletType = "Bank"
	WalletTypeStock   WalletType = "Stock"
	WalletTypeSavings WalletType = "Savings"
	WalletTypeAssets  WalletType = "Assets"
	WalletTypeCredit  WalletType = "Credit"
)

// WalletTypes lists every wallet type in display order
var WalletTypes = []WalletType{
	WalletTypeCash,
	WalletTypeBank,
	WalletTypeStock,
	WalletTypeSavings,
	WalletTypeAssets,
	WalletTypeCredit,
}

// IsValid reports whether t is one of the known wallet types
func (t WalletType) IsValid() bool {
	_, ok := ledgerRules[t]
	return ok
}

// ParseWalletType converts a raw string into a WalletType
func ParseWalletType(s string) (WalletType, error) {
	t := WalletType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: wallet type must be one of %v", ErrInvalidArgument, WalletTypes)
	}
	return t, nil
}

// Wallet represents a wallet entity in the domain layer.
//
// Balance is the spendable total for every type except Credit, whose debt is tracked in Loan.
// Cash, InvestmentValue and GrossBalance are only meaningful for Stock wallets, where
// GrossBalance == Cash + InvestmentValue after every mutation.
type Wallet struct {
	ID              uuid.UUID
	Name            string
	Type            WalletType
	Detail          string
	Balance         decimal.Decimal
	Cash            decimal.Decimal
	InvestmentValue decimal.Decimal
	GrossBalance    decimal.Decimal
	Margin          decimal.Decimal
	Loan            decimal.Decimal
	NotMine         bool // shared or observational wallet
	CreatedAt       time.Time
}

// Validate ensures the wallet adheres to domain rules
func (w *Wallet) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: wallet name cannot be empty", ErrInvalidArgument)
	}
	if !w.Type.IsValid() {
		return fmt.Errorf("%w: unknown wallet type %q", ErrInvalidArgument, w.Type)
	}
	return nil
}

// Settle recomputes the derived fields of the wallet.
// It runs unconditionally at the end of every mutation instead of adjusting GrossBalance
// incrementally, so a stored gross balance can never drift from its parts.
func (w *Wallet) Settle() {
	if w.Type == WalletTypeStock {
		w.GrossBalance = w.Cash.Add(w.InvestmentValue)
	}
}

// GrossDrifted reports whether a Stock wallet's stored gross balance disagrees with cash + investment value
func (w *Wallet) GrossDrifted() bool {
	return w.IsStock() && !w.GrossBalance.Equal(w.Cash.Add(w.InvestmentValue))
}

// IsStock reports whether the wallet can hold stock positions
func (w *Wallet) IsStock() bool {
	return w.Type == WalletTypeStock
}
