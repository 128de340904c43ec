package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// CategoryTransfer is the category stamped on both rows produced by a transfer
const CategoryTransfer = "Transfer"

// IsValid reports whether t is income or expense
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a transaction entity in the domain layer.
// WalletID is a weak reference: a nil WalletID marks a wallet-less transaction that carries
// no ledger effect, and deleting a wallet leaves its transactions in place.
type Transaction struct {
	ID          uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
	WalletID    *uuid.UUID
	Date        time.Time
	CreatedAt   time.Time
}

// HasWallet reports whether the transaction is linked to a wallet
func (t *Transaction) HasWallet() bool {
	return t.WalletID != nil && *t.WalletID != uuid.Nil
}

// Validate ensures the transaction adheres to domain rules.
// Amount positivity is expected but not enforced.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: transaction type must be 'income' or 'expense'", ErrInvalidArgument)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrInvalidArgument)
	}
	return nil
}
