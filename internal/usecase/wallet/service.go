package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/identity"
)

// CreateWalletInput represents the input for creating a wallet.
// Balance always starts at zero; the stock and credit fields may carry opening values.
type CreateWalletInput struct {
	Name            string
	Type            domain.WalletType
	Detail          string
	Cash            decimal.Decimal
	InvestmentValue decimal.Decimal
	Margin          decimal.Decimal
	Loan            decimal.Decimal
	NotMine         bool
}

// UpdateWalletInput represents a manual correction of a wallet. Nil fields are left unchanged.
// The wallet type cannot be changed once created.
type UpdateWalletInput struct {
	Name            *string
	Detail          *string
	Balance         *decimal.Decimal
	Cash            *decimal.Decimal
	InvestmentValue *decimal.Decimal
	Margin          *decimal.Decimal
	Loan            *decimal.Decimal
	NotMine         *bool
}

// WalletService handles wallet catalog operations
type WalletService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewWalletService creates a new WalletService instance
func NewWalletService(store domain.Store, logger logrus.FieldLogger) *WalletService {
	return &WalletService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateWallet creates a wallet with a zero balance
func (s *WalletService) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	wallet := &domain.Wallet{
		ID:              uuid.New(),
		Name:            input.Name,
		Type:            input.Type,
		Detail:          input.Detail,
		Balance:         decimal.Zero,
		Cash:            input.Cash,
		InvestmentValue: input.InvestmentValue,
		Margin:          input.Margin,
		Loan:            input.Loan,
		NotMine:         input.NotMine,
		CreatedAt:       s.Now().UTC(),
	}
	if err := wallet.Validate(); err != nil {
		return nil, err
	}
	wallet.Settle()

	if err := s.Store.Wallets().Create(ctx, wallet); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":    identity.FromContext(ctx).Subject,
		"wallet_id": wallet.ID,
		"type":      wallet.Type,
	}).Info("wallet created")
	return wallet, nil
}

// GetWallet retrieves a wallet by its ID
func (s *WalletService) GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	return s.Store.Wallets().GetByID(ctx, id)
}

// ListWallets retrieves every wallet, newest first.
// A storage failure degrades to an empty list.
func (s *WalletService) ListWallets(ctx context.Context) domain.Result[[]*domain.Wallet] {
	wallets, err := s.Store.Wallets().List(ctx)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list wallets, returning empty list")
		return domain.Degraded([]*domain.Wallet{}, err)
	}
	return domain.Ok(wallets)
}

// UpdateWallet applies a manual correction to a wallet.
// Logic:
//  1. Lock and load the wallet (NotFound if missing)
//  2. Overwrite every field present in the input
//  3. Recompute the derived gross balance and persist
func (s *WalletService) UpdateWallet(ctx context.Context, id uuid.UUID, input UpdateWalletInput) (*domain.Wallet, error) {
	var updated *domain.Wallet
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		wallet, err := repos.Wallets().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			wallet.Name = *input.Name
		}
		if input.Detail != nil {
			wallet.Detail = *input.Detail
		}
		if input.Balance != nil {
			wallet.Balance = *input.Balance
		}
		if input.Cash != nil {
			wallet.Cash = *input.Cash
		}
		if input.InvestmentValue != nil {
			wallet.InvestmentValue = *input.InvestmentValue
		}
		if input.Margin != nil {
			wallet.Margin = *input.Margin
		}
		if input.Loan != nil {
			wallet.Loan = *input.Loan
		}
		if input.NotMine != nil {
			wallet.NotMine = *input.NotMine
		}

		if err := wallet.Validate(); err != nil {
			return err
		}
		wallet.Settle()

		if err := repos.Wallets().Update(ctx, wallet); err != nil {
			return err
		}
		updated = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":    identity.FromContext(ctx).Subject,
		"wallet_id": id,
	}).Info("wallet corrected manually")
	return updated, nil
}

// DeleteWallet removes a wallet. Its transactions and stock positions are kept and keep
// pointing at the deleted wallet.
func (s *WalletService) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	if err := s.Store.Wallets().Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":    identity.FromContext(ctx).Subject,
		"wallet_id": id,
	}).Info("wallet deleted")
	return nil
}

// ReconcileStockWallets recomputes the gross balance of every Stock wallet whose stored value
// drifted from cash + investment value, and returns the wallets it corrected.
// The listing only selects candidates: each one is reloaded under its row lock and settled
// from that copy, so concurrent ledger writes are never overwritten.
func (s *WalletService) ReconcileStockWallets(ctx context.Context) ([]*domain.Wallet, error) {
	var fixed []*domain.Wallet
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		fixed = nil
		wallets, err := repos.Wallets().List(ctx)
		if err != nil {
			return err
		}
		for _, candidate := range wallets {
			if !candidate.GrossDrifted() {
				continue
			}
			w, err := repos.Wallets().GetByID(ctx, candidate.ID)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !w.GrossDrifted() {
				continue
			}
			w.Settle()
			if err := repos.Wallets().Update(ctx, w); err != nil {
				return err
			}
			fixed = append(fixed, w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":    identity.FromContext(ctx).Subject,
		"corrected": len(fixed),
	}).Info("stock wallets reconciled")
	return fixed, nil
}
