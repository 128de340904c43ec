package transfer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/identity"
)

// TransferInput represents a request to move money between two wallets
type TransferInput struct {
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	Amount       decimal.Decimal
	Description  string
}

// Receipt is the outcome of a completed transfer
type Receipt struct {
	From    *domain.Wallet
	To      *domain.Wallet
	Expense *domain.Transaction // recorded on the source wallet
	Income  *domain.Transaction // recorded on the destination wallet
}

// TransferService moves money between wallets
type TransferService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewTransferService creates a new TransferService instance
func NewTransferService(store domain.Store, logger logrus.FieldLogger) *TransferService {
	return &TransferService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// Transfer moves money from one wallet to another as a single unit of work.
// The amount must be positive (InvalidArgument).
// Logic:
//  1. Lock and load both wallets in ascending id order (NotFound naming the missing side)
//  2. Reject a destination equal to the source (InvalidArgument)
//  3. Check the source can send the amount (InsufficientFunds; Credit wallets are exempt)
//  4. Apply the transfer-out effect to the source and the transfer-in effect to the destination
//  5. Record an expense on the source and an income on the destination, both dated now
//
// Nothing is written unless every step succeeds.
func (s *TransferService) Transfer(ctx context.Context, input TransferInput) (*Receipt, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", domain.ErrInvalidArgument)
	}
	now := s.Now().UTC()

	var receipt *Receipt
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		from, to, err := lockWallets(ctx, repos.Wallets(), input.FromWalletID, input.ToWalletID)
		if err != nil {
			return err
		}

		if err := domain.CheckTransferFunds(from, input.Amount); err != nil {
			return err
		}
		if err := domain.ApplyTransferOut(from, input.Amount); err != nil {
			return err
		}
		if err := domain.ApplyTransferIn(to, input.Amount); err != nil {
			return err
		}
		if err := repos.Wallets().Update(ctx, from); err != nil {
			return err
		}
		if err := repos.Wallets().Update(ctx, to); err != nil {
			return err
		}

		expense, income := mirroredRows(from, to, input, now)
		if err := repos.Transactions().Create(ctx, expense); err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, income); err != nil {
			return err
		}

		receipt = &Receipt{From: from, To: to, Expense: expense, Income: income}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"caller":         identity.FromContext(ctx).Subject,
		"from_wallet_id": input.FromWalletID,
		"to_wallet_id":   input.ToWalletID,
		"amount":         input.Amount.String(),
	}).Info("transfer completed")
	return receipt, nil
}

// lockWallets loads the source and destination wallets, taking row locks in ascending id
// order whatever the direction of the transfer.
// A missing wallet is reported before a same-wallet request.
func lockWallets(ctx context.Context, wallets domain.WalletRepository, fromID, toID uuid.UUID) (*domain.Wallet, *domain.Wallet, error) {
	if fromID == toID {
		if _, err := wallets.GetByID(ctx, fromID); err != nil {
			return nil, nil, fmt.Errorf("source wallet: %w", err)
		}
		return nil, nil, fmt.Errorf("%w: cannot transfer to the same wallet", domain.ErrInvalidArgument)
	}

	first, second := fromID, toID
	if bytes.Compare(toID[:], fromID[:]) < 0 {
		first, second = toID, fromID
	}

	loaded := make(map[uuid.UUID]*domain.Wallet, 2)
	for _, id := range []uuid.UUID{first, second} {
		w, err := wallets.GetByID(ctx, id)
		if err != nil {
			side := "source"
			if id == toID {
				side = "destination"
			}
			return nil, nil, fmt.Errorf("%s wallet: %w", side, err)
		}
		loaded[id] = w
	}
	return loaded[fromID], loaded[toID], nil
}

// mirroredRows builds the expense and income rows that record a transfer
func mirroredRows(from, to *domain.Wallet, input TransferInput, now time.Time) (*domain.Transaction, *domain.Transaction) {
	description := input.Description
	if description == "" {
		description = "Transfer to " + to.Name
	}

	fromID, toID := from.ID, to.ID
	expense := &domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeExpense,
		Amount:      input.Amount,
		Description: description,
		Category:    domain.CategoryTransfer,
		WalletID:    &fromID,
		Date:        now,
		CreatedAt:   now,
	}
	income := &domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeIncome,
		Amount:      input.Amount,
		Description: "Transfer from " + from.Name,
		Category:    domain.CategoryTransfer,
		WalletID:    &toID,
		Date:        now,
		CreatedAt:   now,
	}
	return expense, income
}
