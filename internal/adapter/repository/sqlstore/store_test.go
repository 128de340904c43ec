package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// newTestStore opens a private in-memory SQLite database with the schema applied
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite", uuid.NewString())
	db, err := NewDB(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "migrations are idempotent")
	return NewStore(db)
}

var created = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestWalletRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	wallet := &domain.Wallet{
		ID:              uuid.New(),
		Name:            "Brokerage",
		Type:            domain.WalletTypeStock,
		Detail:          "main account",
		Balance:         decimal.RequireFromString("1234.56789"),
		Cash:            decimal.RequireFromString("0.1"),
		InvestmentValue: decimal.RequireFromString("0.2"),
		GrossBalance:    decimal.RequireFromString("0.3"),
		Margin:          decimal.RequireFromString("12"),
		Loan:            decimal.Zero,
		NotMine:         true,
		CreatedAt:       created,
	}
	require.NoError(t, store.Wallets().Create(ctx, wallet))

	got, err := store.Wallets().GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.Name, got.Name)
	assert.Equal(t, domain.WalletTypeStock, got.Type)
	assert.Equal(t, "main account", got.Detail)
	assert.True(t, wallet.Balance.Equal(got.Balance), "balance = %s", got.Balance)
	assert.True(t, decimal.RequireFromString("0.3").Equal(got.GrossBalance), "decimals are stored exactly")
	assert.True(t, got.NotMine)
	assert.True(t, created.Equal(got.CreatedAt))

	got.Balance = decimal.RequireFromString("99.99")
	got.Name = "Renamed"
	require.NoError(t, store.Wallets().Update(ctx, got))

	again, err := store.Wallets().GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.True(t, decimal.RequireFromString("99.99").Equal(again.Balance))
}

func TestWalletRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i, name := range []string{"Old", "Middle", "New"} {
		require.NoError(t, store.Wallets().Create(ctx, &domain.Wallet{
			ID:        uuid.New(),
			Name:      name,
			Type:      domain.WalletTypeCash,
			CreatedAt: created.Add(time.Duration(i) * time.Hour),
		}))
	}

	wallets, err := store.Wallets().List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "New", wallets[0].Name)
	assert.Equal(t, "Old", wallets[2].Name)
}

func TestRepositories_MissingRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	id := uuid.New()

	_, err := store.Wallets().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), id.String())

	_, err = store.Transactions().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Stocks().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Assets().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.BudgetPlans().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Notes().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Tasks().GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Wallets().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Transactions().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Stocks().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Assets().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.BudgetPlans().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Notes().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Tasks().Delete(ctx, id), domain.ErrNotFound)
	assert.ErrorIs(t, store.Tasks().ToggleCompleted(ctx, id), domain.ErrNotFound)

	assert.ErrorIs(t, store.Wallets().Update(ctx, &domain.Wallet{ID: id}), domain.ErrNotFound)
}

func TestTransactionRepository_WalletLink(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	walletID := uuid.New()

	linked := &domain.Transaction{
		ID:        uuid.New(),
		Type:      domain.TransactionTypeExpense,
		Amount:    decimal.RequireFromString("12.34"),
		Category:  "Food",
		WalletID:  &walletID,
		Date:      created,
		CreatedAt: created,
	}
	loose := &domain.Transaction{
		ID:        uuid.New(),
		Type:      domain.TransactionTypeIncome,
		Amount:    decimal.NewFromInt(5),
		Date:      created.Add(24 * time.Hour),
		CreatedAt: created,
	}
	require.NoError(t, store.Transactions().Create(ctx, linked))
	require.NoError(t, store.Transactions().Create(ctx, loose))

	got, err := store.Transactions().GetByID(ctx, linked.ID)
	require.NoError(t, err)
	require.NotNil(t, got.WalletID)
	assert.Equal(t, walletID, *got.WalletID)
	assert.True(t, linked.Amount.Equal(got.Amount))

	got, err = store.Transactions().GetByID(ctx, loose.ID)
	require.NoError(t, err)
	assert.Nil(t, got.WalletID)

	list, err := store.Transactions().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, loose.ID, list[0].ID, "most recent date first")
}

func TestTransactionRepository_UpdateKeepsWalletLink(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	walletID := uuid.New()

	tx := &domain.Transaction{
		ID:        uuid.New(),
		Type:      domain.TransactionTypeExpense,
		Amount:    decimal.NewFromInt(10),
		WalletID:  &walletID,
		Date:      created,
		CreatedAt: created,
	}
	require.NoError(t, store.Transactions().Create(ctx, tx))

	tx.Amount = decimal.NewFromInt(99)
	tx.WalletID = nil
	require.NoError(t, store.Transactions().Update(ctx, tx))

	got, err := store.Transactions().GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(99).Equal(got.Amount))
	require.NotNil(t, got.WalletID)
	assert.Equal(t, walletID, *got.WalletID)
}

func TestStockRepository_SellFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	walletID := uuid.New()

	open := &domain.StockPosition{
		ID:         uuid.New(),
		WalletID:   walletID,
		Code:       "FPT",
		Volume:     decimal.NewFromInt(10),
		StartPrice: decimal.RequireFromString("50.5"),
		StartDate:  created,
		IsHolding:  true,
		Margin:     decimal.Zero,
		CreatedAt:  created,
	}
	require.NoError(t, store.Stocks().Create(ctx, open))
	require.NoError(t, store.Stocks().Create(ctx, &domain.StockPosition{
		ID:         uuid.New(),
		WalletID:   uuid.New(),
		Code:       "VNM",
		Volume:     decimal.NewFromInt(1),
		StartPrice: decimal.NewFromInt(1),
		StartDate:  created,
		IsHolding:  true,
		CreatedAt:  created,
	}))

	got, err := store.Stocks().GetByID(ctx, open.ID)
	require.NoError(t, err)
	assert.True(t, got.IsHolding)
	assert.Nil(t, got.SellPrice)
	assert.Nil(t, got.SellDate)

	sellPrice := decimal.RequireFromString("60.25")
	sellDate := created.Add(48 * time.Hour)
	got.SellPrice = &sellPrice
	got.SellDate = &sellDate
	got.IsHolding = false
	require.NoError(t, store.Stocks().Update(ctx, got))

	closed, err := store.Stocks().GetByID(ctx, open.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsHolding)
	require.NotNil(t, closed.SellPrice)
	assert.True(t, sellPrice.Equal(*closed.SellPrice))
	require.NotNil(t, closed.SellDate)
	assert.True(t, sellDate.Equal(*closed.SellDate))

	all, err := store.Stocks().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := store.Stocks().List(ctx, &walletID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "FPT", mine[0].Code)
}

func TestAssetRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	asset := &domain.Asset{
		ID:        uuid.New(),
		Type:      domain.AssetTypeGold,
		Name:      "Bar",
		Amount:    decimal.RequireFromString("1.5"),
		Value:     decimal.RequireFromString("3500.75"),
		Currency:  "USD",
		Notes:     "vault",
		Date:      created,
		CreatedAt: created,
	}
	require.NoError(t, store.Assets().Create(ctx, asset))

	asset.Value = decimal.NewFromInt(4000)
	require.NoError(t, store.Assets().Update(ctx, asset))

	list, err := store.Assets().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.AssetTypeGold, list[0].Type)
	assert.True(t, decimal.NewFromInt(4000).Equal(list[0].Value))
	assert.Equal(t, "vault", list[0].Notes)

	require.NoError(t, store.Assets().Delete(ctx, asset.ID))
	list, err = store.Assets().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBudgetPlanRepository_TypeFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	plans := []*domain.BudgetPlan{
		{ID: uuid.New(), Name: "Salary", Value: decimal.NewFromInt(3000), Type: domain.PlanTypeIncome, CreatedAt: created},
		{ID: uuid.New(), Name: "Rent", Value: decimal.NewFromInt(900), Type: domain.PlanTypeExpense, CreatedAt: created},
		{ID: uuid.New(), Name: "Food", Value: decimal.NewFromInt(400), Type: domain.PlanTypeExpense, Icon: "fork", CreatedAt: created},
	}
	for _, p := range plans {
		require.NoError(t, store.BudgetPlans().Create(ctx, p))
	}

	all, err := store.BudgetPlans().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	expenses, err := store.BudgetPlans().List(ctx, domain.PlanTypeExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Food", expenses[0].Name, "ordered by name")
	assert.Equal(t, "fork", expenses[0].Icon)
}

func TestNoteRepository_Filters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	day := func(d int) time.Time { return time.Date(2025, 7, d, 12, 0, 0, 0, time.UTC) }
	notes := []*domain.Note{
		{ID: uuid.New(), Title: "Gym", Content: "legs", Tag: domain.NoteTagHealth, Date: day(1), CreatedAt: created},
		{ID: uuid.New(), Title: "Standup", Content: "notes", Tag: domain.NoteTagWork, Date: day(3), CreatedAt: created},
		{ID: uuid.New(), Title: "Run", Content: "5k", Tag: domain.NoteTagHealth, Remark: true, Image: "run.png", Date: day(5), CreatedAt: created},
	}
	for _, n := range notes {
		require.NoError(t, store.Notes().Create(ctx, n))
	}

	all, err := store.Notes().List(ctx, domain.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Run", all[0].Title, "most recent date first")
	assert.True(t, all[0].Remark)
	assert.Equal(t, "run.png", all[0].Image)
	assert.True(t, day(5).Equal(all[0].Date))

	health, err := store.Notes().List(ctx, domain.NoteFilter{Tag: domain.NoteTagHealth})
	require.NoError(t, err)
	assert.Len(t, health, 2)

	recent, err := store.Notes().List(ctx, domain.NoteFilter{Since: day(3)})
	require.NoError(t, err)
	assert.Len(t, recent, 2, "the lower bound is inclusive")

	recentHealth, err := store.Notes().List(ctx, domain.NoteFilter{Tag: domain.NoteTagHealth, Since: day(2)})
	require.NoError(t, err)
	require.Len(t, recentHealth, 1)
	assert.Equal(t, "Run", recentHealth[0].Title)

	notes[1].Title = "Retro"
	notes[1].Tag = domain.NoteTagLife
	require.NoError(t, store.Notes().Update(ctx, notes[1]))
	got, err := store.Notes().GetByID(ctx, notes[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Retro", got.Title)
	assert.Equal(t, domain.NoteTagLife, got.Tag)

	require.NoError(t, store.Notes().Delete(ctx, notes[0].ID))
	all, err = store.Notes().List(ctx, domain.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskRepository_ToggleCompleted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	task := &domain.Task{ID: uuid.New(), Title: "Pay rent", Description: "before the 5th", CreatedAt: created}
	require.NoError(t, store.Tasks().Create(ctx, task))

	require.NoError(t, store.Tasks().ToggleCompleted(ctx, task.ID))
	got, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "before the 5th", got.Description)

	require.NoError(t, store.Tasks().ToggleCompleted(ctx, task.ID))
	got, err = store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	got.Title = "Pay rent and bills"
	got.Completed = true
	require.NoError(t, store.Tasks().Update(ctx, got))

	later := &domain.Task{ID: uuid.New(), Title: "Call bank", CreatedAt: created.Add(time.Hour)}
	require.NoError(t, store.Tasks().Create(ctx, later))

	tasks, err := store.Tasks().List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Pay rent and bills", tasks[0].Title, "creation order")
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "Call bank", tasks[1].Title)
}

func TestStore_AtomicRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	wallet := &domain.Wallet{ID: uuid.New(), Name: "Pocket", Type: domain.WalletTypeCash, Balance: decimal.NewFromInt(100), CreatedAt: created}
	require.NoError(t, store.Wallets().Create(ctx, wallet))

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		w, err := repos.Wallets().GetByID(ctx, wallet.ID)
		if err != nil {
			return err
		}
		w.Balance = decimal.Zero
		if err := repos.Wallets().Update(ctx, w); err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, &domain.Transaction{
			ID: uuid.New(), Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: created, CreatedAt: created,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Wallets().GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Balance))

	txs, err := store.Transactions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestStore_AtomicCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	id := uuid.New()

	err := store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Wallets().Create(ctx, &domain.Wallet{ID: id, Name: "Bank", Type: domain.WalletTypeBank, CreatedAt: created})
	})
	require.NoError(t, err)

	_, err = store.Wallets().GetByID(ctx, id)
	assert.NoError(t, err)
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestStore_ClosedDatabaseIsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.db.Close())

	_, err := store.Wallets().List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	err = store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
