package stock

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

// OpenStockInput represents the input for buying a stock position
type OpenStockInput struct {
	WalletID   uuid.UUID
	Code       string
	Volume     decimal.Decimal
	StartPrice decimal.Decimal
	StartDate  time.Time
	Margin     decimal.Decimal
}

// UpdateStockInput represents an edit of a stock position. Nil fields are left unchanged.
// Setting IsHolding to false together with a non-zero SellPrice closes the position.
type UpdateStockInput struct {
	Code       *string
	Volume     *decimal.Decimal
	StartPrice *decimal.Decimal
	StartDate  *time.Time
	SellPrice  *decimal.Decimal
	SellDate   *time.Time
	IsHolding  *bool
	Margin     *decimal.Decimal
}

// closes reports whether the edit sells the position
func (in UpdateStockInput) closes() bool {
	return in.IsHolding != nil && !*in.IsHolding &&
		in.SellPrice != nil && !in.SellPrice.IsZero()
}

// StockService keeps Stock wallets consistent with the positions bought and sold in them
type StockService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewStockService creates a new StockService instance
func NewStockService(store domain.Store, logger logrus.FieldLogger) *StockService {
	return &StockService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// OpenStock buys a position with the wallet's cash.
// Logic:
//  1. Lock and load the wallet (NotFound if missing)
//  2. Wallet must be a Stock wallet (InvalidArgument) with cash >= volume*startPrice + margin
//     (InsufficientFunds)
//  3. Move the cost out of cash into investment value, persist wallet and the new position
func (s *StockService) OpenStock(ctx context.Context, input OpenStockInput) (*domain.StockPosition, error) {
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = s.Now()
	}

	position := &domain.StockPosition{
		ID:         uuid.New(),
		WalletID:   input.WalletID,
		Code:       input.Code,
		Volume:     input.Volume,
		StartPrice: input.StartPrice,
		StartDate:  startDate.UTC(),
		IsHolding:  true,
		Margin:     input.Margin,
		CreatedAt:  s.Now().UTC(),
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}

	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		wallet, err := repos.Wallets().GetByID(ctx, position.WalletID)
		if err != nil {
			return err
		}
		if err := domain.OpenPosition(wallet, position); err != nil {
			return err
		}
		if err := repos.Wallets().Update(ctx, wallet); err != nil {
			return err
		}
		return repos.Stocks().Create(ctx, position)
	})
	if err != nil {
		return nil, err
	}

	s.logger(ctx).WithFields(logrus.Fields{
		"stock_id":  position.ID,
		"wallet_id": position.WalletID,
		"code":      position.Code,
		"cost":      position.TotalCost().String(),
	}).Info("stock position opened")
	return position, nil
}

// GetStock retrieves a stock position by its ID
func (s *StockService) GetStock(ctx context.Context, id uuid.UUID) (*domain.StockPosition, error) {
	return s.Store.Stocks().GetByID(ctx, id)
}

// ListStocks retrieves stock positions, most recent start date first.
// A nil walletID lists the positions of every wallet. A storage failure degrades to an empty list.
func (s *StockService) ListStocks(ctx context.Context, walletID *uuid.UUID) domain.Result[[]*domain.StockPosition] {
	positions, err := s.Store.Stocks().List(ctx, walletID)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list stock positions, returning empty list")
		return domain.Degraded([]*domain.StockPosition{}, err)
	}
	return domain.Ok(positions)
}

// UpdateStock edits a position and, when the edit sells it, credits the wallet.
// Logic:
//  1. Load the stored position (NotFound if missing)
//  2. If the edit closes the position: cash += stored volume * sell price,
//     investment value -= stored volume * stored start price. A missing wallet is skipped.
//  3. Store every provided field verbatim
//
// Closing is applied on every qualifying call, so closing an already closed position
// credits the wallet again.
func (s *StockService) UpdateStock(ctx context.Context, id uuid.UUID, input UpdateStockInput) (*domain.StockPosition, error) {
	var updated *domain.StockPosition
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		position, err := repos.Stocks().GetByID(ctx, id)
		if err != nil {
			return err
		}
		stored := *position

		if input.Code != nil {
			position.Code = *input.Code
		}
		if input.Volume != nil {
			position.Volume = *input.Volume
		}
		if input.StartPrice != nil {
			position.StartPrice = *input.StartPrice
		}
		if input.StartDate != nil {
			position.StartDate = input.StartDate.UTC()
		}
		if input.SellPrice != nil {
			sellPrice := *input.SellPrice
			position.SellPrice = &sellPrice
		}
		if input.SellDate != nil {
			sellDate := input.SellDate.UTC()
			position.SellDate = &sellDate
		}
		if input.IsHolding != nil {
			position.IsHolding = *input.IsHolding
		}
		if input.Margin != nil {
			position.Margin = *input.Margin
		}
		if err := position.Validate(); err != nil {
			return err
		}

		if input.closes() {
			if err := s.settleOnWallet(ctx, repos, &stored, func(w *domain.Wallet) {
				domain.ClosePosition(w, &stored, *input.SellPrice)
			}); err != nil {
				return err
			}
		}

		if err := repos.Stocks().Update(ctx, position); err != nil {
			return err
		}
		updated = position
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := s.logger(ctx).WithField("stock_id", id)
	if input.closes() {
		entry.WithField("sell_price", input.SellPrice.String()).Info("stock position closed")
	} else {
		entry.Info("stock position updated")
	}
	return updated, nil
}

// DeleteStock removes a position. An open position is released back to the wallet's cash
// at cost basis; a closed one has already been settled and leaves the wallet untouched.
func (s *StockService) DeleteStock(ctx context.Context, id uuid.UUID) error {
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		position, err := repos.Stocks().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if position.IsHolding {
			if err := s.settleOnWallet(ctx, repos, position, func(w *domain.Wallet) {
				domain.ReleasePosition(w, position)
			}); err != nil {
				return err
			}
		}
		return repos.Stocks().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger(ctx).WithField("stock_id", id).Info("stock position deleted")
	return nil
}

// settleOnWallet loads the position's wallet, applies effect and persists it.
// A wallet that no longer exists is skipped.
func (s *StockService) settleOnWallet(
	ctx context.Context,
	repos domain.Repositories,
	position *domain.StockPosition,
	effect func(w *domain.Wallet),
) error {
	wallet, err := repos.Wallets().GetByID(ctx, position.WalletID)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger(ctx).WithFields(logrus.Fields{
			"stock_id":  position.ID,
			"wallet_id": position.WalletID,
		}).Warn("wallet of stock position no longer exists, skipping cash settlement")
		return nil
	}
	if err != nil {
		return err
	}

	effect(wallet)
	return repos.Wallets().Update(ctx, wallet)
}

func (s *StockService) logger(ctx context.Context) logrus.FieldLogger {
	return s.Logger.WithField("caller", identity.FromContext(ctx).Subject)
}
