package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/identity"
)

// CreateTransactionInput represents the input for recording a transaction.
// A nil WalletID records a wallet-less transaction with no ledger effect.
// A zero Date defaults to the current time.
type CreateTransactionInput struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
	WalletID    *uuid.UUID
	Date        time.Time
}

// UpdateTransactionInput represents an edit of a transaction. Nil fields are left unchanged.
// The linked wallet cannot be changed.
type UpdateTransactionInput struct {
	Type        *domain.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *time.Time
}

// TransactionService keeps wallets consistent with the transactions recorded against them
type TransactionService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewTransactionService creates a new TransactionService instance
func NewTransactionService(store domain.Store, logger logrus.FieldLogger) *TransactionService {
	return &TransactionService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateTransaction records a transaction and applies its effect to the linked wallet.
// Logic:
//  1. Validate the transaction
//  2. If linked to a wallet: lock and load it (NotFound if missing), apply income or expense
//     and persist the wallet
//  3. Persist the transaction row
//
// Steps 2 and 3 run in one unit of work.
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	date := input.Date
	if date.IsZero() {
		date = s.Now()
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		WalletID:    input.WalletID,
		Date:        date.UTC(),
		CreatedAt:   s.Now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if !tx.HasWallet() {
		tx.WalletID = nil
	}

	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if tx.HasWallet() {
			wallet, err := repos.Wallets().GetByID(ctx, *tx.WalletID)
			if err != nil {
				return err
			}
			if err := domain.ApplyTransactionEffect(wallet, tx.Type, tx.Amount); err != nil {
				return err
			}
			if err := repos.Wallets().Update(ctx, wallet); err != nil {
				return err
			}
		}
		return repos.Transactions().Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger(ctx).WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"type":           tx.Type,
		"amount":         tx.Amount.String(),
		"wallet_linked":  tx.HasWallet(),
	}).Info("transaction recorded")
	return tx, nil
}

// GetTransaction retrieves a transaction by its ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return s.Store.Transactions().GetByID(ctx, id)
}

// ListTransactions retrieves every transaction, most recent date first.
// A storage failure degrades to an empty list.
func (s *TransactionService) ListTransactions(ctx context.Context) domain.Result[[]*domain.Transaction] {
	txs, err := s.Store.Transactions().List(ctx)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list transactions, returning empty list")
		return domain.Degraded([]*domain.Transaction{}, err)
	}
	return domain.Ok(txs)
}

// UpdateTransaction edits the descriptive and monetary fields of a transaction.
//
// The wallet is NOT adjusted for a changed type or amount: a later delete reverses the edited
// values, not the ones originally applied.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	var updated *domain.Transaction
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		tx, err := repos.Transactions().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Type != nil {
			tx.Type = *input.Type
		}
		if input.Amount != nil {
			tx.Amount = *input.Amount
		}
		if input.Description != nil {
			tx.Description = *input.Description
		}
		if input.Category != nil {
			tx.Category = *input.Category
		}
		if input.Date != nil {
			tx.Date = input.Date.UTC()
		}

		if err := tx.Validate(); err != nil {
			return err
		}
		if err := repos.Transactions().Update(ctx, tx); err != nil {
			return err
		}
		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(ctx).WithField("transaction_id", id).Info("transaction updated")
	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the linked wallet.
// Logic:
//  1. Load the transaction (NotFound if missing)
//  2. If linked to a wallet that still exists: apply the exact inverse effect
//  3. Remove the transaction row
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		tx, err := repos.Transactions().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if tx.HasWallet() {
			if err := reverseOnWallet(ctx, repos, tx); err != nil {
				return err
			}
		}
		return repos.Transactions().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger(ctx).WithField("transaction_id", id).Info("transaction deleted")
	return nil
}

func reverseOnWallet(ctx context.Context, repos domain.Repositories, tx *domain.Transaction) error {
	wallet, err := repos.Wallets().GetByID(ctx, *tx.WalletID)
	if errors.Is(err, domain.ErrNotFound) {
		// dangling reference: the wallet was deleted, only the row goes
		return nil
	}
	if err != nil {
		return err
	}

	if err := domain.ReverseTransactionEffect(wallet, tx.Type, tx.Amount); err != nil {
		return fmt.Errorf("failed to reverse transaction %s: %w", tx.ID, err)
	}
	return repos.Wallets().Update(ctx, wallet)
}

func (s *TransactionService) logger(ctx context.Context) logrus.FieldLogger {
	return s.Logger.WithField("caller", identity.FromContext(ctx).Subject)
}
