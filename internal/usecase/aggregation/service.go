package aggregation

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// TypeTotal is the number of assets of one type and their combined signed value
type TypeTotal struct {
	Count int
	Value decimal.Decimal
}

// PortfolioTotals represents the asset portfolio rolled up by type.
// Loan assets count negatively in both their type total and the portfolio value.
type PortfolioTotals struct {
	TotalPortfolioValue decimal.Decimal
	ByType              map[domain.AssetType]TypeTotal
}

// TransactionTotals represents income and expense summed over every transaction
type TransactionTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal // Income - Expense
}

// WalletTotals represents balances summed over every wallet
type WalletTotals struct {
	TotalBalance decimal.Decimal // non-Credit balances
	TotalCredit  decimal.Decimal // Credit loans
	Net          decimal.Decimal // TotalBalance - TotalCredit
}

// AggregationService computes read-side rollups. Nothing is cached: every call re-reads storage.
type AggregationService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
}

// NewAggregationService creates a new AggregationService instance
func NewAggregationService(store domain.Store, logger logrus.FieldLogger) *AggregationService {
	return &AggregationService{
		Store:  store,
		Logger: logger,
	}
}

// GetPortfolioTotals sums asset values per type
func (s *AggregationService) GetPortfolioTotals(ctx context.Context) domain.Result[PortfolioTotals] {
	assets, err := s.Store.Assets().List(ctx)
	if err != nil {
		s.degraded(err, "portfolio")
		return domain.Degraded(SumPortfolio(nil), err)
	}
	return domain.Ok(SumPortfolio(assets))
}

// GetTransactionTotals sums income and expense over all transactions
func (s *AggregationService) GetTransactionTotals(ctx context.Context) domain.Result[TransactionTotals] {
	txs, err := s.Store.Transactions().List(ctx)
	if err != nil {
		s.degraded(err, "transaction")
		return domain.Degraded(SumTransactions(nil), err)
	}
	return domain.Ok(SumTransactions(txs))
}

// GetWalletTotals sums wallet balances and credit loans
func (s *AggregationService) GetWalletTotals(ctx context.Context) domain.Result[WalletTotals] {
	wallets, err := s.Store.Wallets().List(ctx)
	if err != nil {
		s.degraded(err, "wallet")
		return domain.Degraded(SumWallets(nil), err)
	}
	return domain.Ok(SumWallets(wallets))
}

func (s *AggregationService) degraded(err error, rollup string) {
	s.Logger.WithError(err).WithField("rollup", rollup).Warn("storage unavailable, returning zero totals")
}

// SumPortfolio rolls assets up by type. Every known type is present in ByType, even with
// no assets.
func SumPortfolio(assets []*domain.Asset) PortfolioTotals {
	totals := PortfolioTotals{
		TotalPortfolioValue: decimal.Zero,
		ByType:              make(map[domain.AssetType]TypeTotal, len(domain.AssetTypes)),
	}
	for _, assetType := range domain.AssetTypes {
		totals.ByType[assetType] = TypeTotal{Value: decimal.Zero}
	}

	for _, asset := range assets {
		value := asset.SignedValue()
		typeTotal := totals.ByType[asset.Type]
		typeTotal.Count++
		typeTotal.Value = typeTotal.Value.Add(value)
		totals.ByType[asset.Type] = typeTotal
		totals.TotalPortfolioValue = totals.TotalPortfolioValue.Add(value)
	}
	return totals
}

// SumTransactions totals income and expense
func SumTransactions(txs []*domain.Transaction) TransactionTotals {
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return TransactionTotals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// SumWallets totals non-Credit balances against Credit loans
func SumWallets(wallets []*domain.Wallet) WalletTotals {
	balance, credit := decimal.Zero, decimal.Zero
	for _, w := range wallets {
		if w.Type == domain.WalletTypeCredit {
			credit = credit.Add(w.Loan)
			continue
		}
		balance = balance.Add(w.Balance)
	}
	return WalletTotals{
		TotalBalance: balance,
		TotalCredit:  credit,
		Net:          balance.Sub(credit),
	}
}
