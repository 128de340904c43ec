package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockPosition represents shares of one stock code held inside a Stock wallet
type StockPosition struct {
	ID         uuid.UUID
	WalletID   uuid.UUID
	Code       string
	Volume     decimal.Decimal
	StartPrice decimal.Decimal
	StartDate  time.Time
	SellPrice  *decimal.Decimal // set once the position is sold
	SellDate   *time.Time
	IsHolding  bool
	Margin     decimal.Decimal
	CreatedAt  time.Time
}

// CostBasis is the original purchase value of the position (volume * start price)
func (p *StockPosition) CostBasis() decimal.Decimal {
	return p.Volume.Mul(p.StartPrice)
}

// TotalCost is the cash needed to open the position: cost basis plus margin
func (p *StockPosition) TotalCost() decimal.Decimal {
	return p.CostBasis().Add(p.Margin)
}

// Validate ensures the position adheres to domain rules
func (p *StockPosition) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w: stock code cannot be empty", ErrInvalidArgument)
	}
	if p.WalletID == uuid.Nil {
		return fmt.Errorf("%w: stock must belong to a wallet", ErrInvalidArgument)
	}
	return nil
}

// OpenPosition moves the purchase cost of p out of the wallet's cash and into its
// investment value.
// Logic:
//  1. Wallet must be a Stock wallet
//  2. Cash must cover volume*startPrice + margin
//  3. cash -= total cost, investment value += cost basis, gross balance recomputed
//
// The wallet is left untouched when an error is returned.
func OpenPosition(w *Wallet, p *StockPosition) error {
	if !w.IsStock() {
		return fmt.Errorf("%w: stock can only be added to a Stock type wallet", ErrInvalidArgument)
	}

	totalCost := p.TotalCost()
	if w.Cash.LessThan(totalCost) {
		return fmt.Errorf("%w: wallet %q has %s cash, position costs %s",
			ErrInsufficientFunds, w.Name, w.Cash.String(), totalCost.String())
	}

	w.Cash = w.Cash.Sub(totalCost)
	w.InvestmentValue = w.InvestmentValue.Add(p.CostBasis())
	w.Settle()
	return nil
}

// ClosePosition returns the sale proceeds of p to the wallet's cash and removes its cost
// basis from the investment value. Realized gain or loss is the difference between the two
// and is never stored.
//
// p must carry the stored volume and start price of the position, not edited values.
func ClosePosition(w *Wallet, p *StockPosition, sellPrice decimal.Decimal) {
	w.Cash = w.Cash.Add(p.Volume.Mul(sellPrice))
	w.InvestmentValue = w.InvestmentValue.Sub(p.CostBasis())
	w.Settle()
}

// ReleasePosition removes an open position at cost basis, as if it were sold at its
// start price
func ReleasePosition(w *Wallet, p *StockPosition) {
	ClosePosition(w, p, p.StartPrice)
}
