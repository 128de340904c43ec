package aggregation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/domain/mocks"
)

func newService() (*AggregationService, *mocks.MockStore, *test.Hook) {
	store := mocks.NewMockStore()
	logger, hook := test.NewNullLogger()
	return NewAggregationService(store, logger), store, hook
}

func TestGetTransactionTotals_Empty(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.TransactionRepo.On("List", ctx).Return([]*domain.Transaction{}, nil)

	result := service.GetTransactionTotals(ctx)

	assert.False(t, result.IsDegraded())
	assert.True(t, result.Data.Income.IsZero())
	assert.True(t, result.Data.Expense.IsZero())
	assert.True(t, result.Data.Balance.IsZero())
}

func TestGetTransactionTotals_Mixed(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.TransactionRepo.On("List", ctx).Return([]*domain.Transaction{
		{ID: uuid.New(), Type: domain.TransactionTypeIncome, Amount: decimal.RequireFromString("1000.50")},
		{ID: uuid.New(), Type: domain.TransactionTypeExpense, Amount: decimal.RequireFromString("200.25")},
		{ID: uuid.New(), Type: domain.TransactionTypeExpense, Amount: decimal.RequireFromString("0.25")},
	}, nil)

	result := service.GetTransactionTotals(ctx)

	require.False(t, result.IsDegraded())
	assert.True(t, decimal.RequireFromString("1000.50").Equal(result.Data.Income))
	assert.True(t, decimal.RequireFromString("200.50").Equal(result.Data.Expense))
	assert.True(t, decimal.NewFromInt(800).Equal(result.Data.Balance))
}

func TestGetTransactionTotals_StorageFailureDegrades(t *testing.T) {
	ctx := context.Background()
	service, store, hook := newService()

	store.TransactionRepo.On("List", ctx).Return(nil, domain.ErrStorageUnavailable)

	result := service.GetTransactionTotals(ctx)

	assert.True(t, result.IsDegraded())
	assert.ErrorIs(t, result.Cause, domain.ErrStorageUnavailable)
	assert.True(t, result.Data.Balance.IsZero())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "transaction", hook.LastEntry().Data["rollup"])
}

func TestGetPortfolioTotals_LoansAreSubtracted(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.AssetRepo.On("List", ctx).Return([]*domain.Asset{
		{ID: uuid.New(), Type: domain.AssetTypeGold, Name: "Bar", Value: decimal.NewFromInt(400)},
		{ID: uuid.New(), Type: domain.AssetTypeCrypto, Name: "BTC", Value: decimal.NewFromInt(600)},
		{ID: uuid.New(), Type: domain.AssetTypeLoan, Name: "Car", Value: decimal.NewFromInt(150)},
		{ID: uuid.New(), Type: domain.AssetTypeLoan, Name: "Phone", Value: decimal.NewFromInt(50)},
	}, nil)

	result := service.GetPortfolioTotals(ctx)

	require.False(t, result.IsDegraded())
	totals := result.Data
	assert.True(t, decimal.NewFromInt(800).Equal(totals.TotalPortfolioValue))
	assert.Equal(t, 2, totals.ByType[domain.AssetTypeLoan].Count)
	assert.True(t, decimal.NewFromInt(-200).Equal(totals.ByType[domain.AssetTypeLoan].Value))
	assert.Equal(t, 1, totals.ByType[domain.AssetTypeGold].Count)
	assert.Equal(t, 0, totals.ByType[domain.AssetTypeBank].Count)
	assert.Len(t, totals.ByType, len(domain.AssetTypes))
}

func TestGetPortfolioTotals_StorageFailureKeepsEveryType(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.AssetRepo.On("List", ctx).Return(nil, domain.ErrStorageUnavailable)

	result := service.GetPortfolioTotals(ctx)

	assert.True(t, result.IsDegraded())
	assert.True(t, result.Data.TotalPortfolioValue.IsZero())
	assert.Len(t, result.Data.ByType, len(domain.AssetTypes))
}

func TestGetWalletTotals(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.WalletRepo.On("List", ctx).Return([]*domain.Wallet{
		{ID: uuid.New(), Type: domain.WalletTypeCash, Balance: decimal.NewFromInt(300)},
		{ID: uuid.New(), Type: domain.WalletTypeStock, Balance: decimal.NewFromInt(200), Cash: decimal.NewFromInt(999)},
		{ID: uuid.New(), Type: domain.WalletTypeCredit, Balance: decimal.NewFromInt(77), Loan: decimal.NewFromInt(120)},
	}, nil)

	result := service.GetWalletTotals(ctx)

	require.False(t, result.IsDegraded())
	assert.True(t, decimal.NewFromInt(500).Equal(result.Data.TotalBalance), "credit balance is ignored")
	assert.True(t, decimal.NewFromInt(120).Equal(result.Data.TotalCredit))
	assert.True(t, decimal.NewFromInt(380).Equal(result.Data.Net))
}

func TestGetWalletTotals_StorageFailureDegrades(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newService()

	store.WalletRepo.On("List", ctx).Return(nil, domain.ErrStorageUnavailable)

	result := service.GetWalletTotals(ctx)

	assert.True(t, result.IsDegraded())
	assert.True(t, result.Data.Net.IsZero())
}
