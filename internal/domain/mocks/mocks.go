// Package mocks holds testify mocks of the domain repositories shared by the use case tests.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// MockWalletRepository is a mock implementation of WalletRepository for testing
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) List(ctx context.Context) ([]*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockRepository is a mock implementation of StockRepository for testing
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockPosition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockPosition), args.Error(1)
}

func (m *MockStockRepository) List(ctx context.Context, walletID *uuid.UUID) ([]*domain.StockPosition, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StockPosition), args.Error(1)
}

func (m *MockStockRepository) Create(ctx context.Context, stock *domain.StockPosition) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, stock *domain.StockPosition) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBudgetPlanRepository is a mock implementation of BudgetPlanRepository for testing
type MockBudgetPlanRepository struct {
	mock.Mock
}

func (m *MockBudgetPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetPlan), args.Error(1)
}

func (m *MockBudgetPlanRepository) List(ctx context.Context, typeFilter domain.PlanType) ([]*domain.BudgetPlan, error) {
	args := m.Called(ctx, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BudgetPlan), args.Error(1)
}

func (m *MockBudgetPlanRepository) Create(ctx context.Context, plan *domain.BudgetPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockBudgetPlanRepository) Update(ctx context.Context, plan *domain.BudgetPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockBudgetPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of NoteRepository for testing
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockNoteRepository) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Note), args.Error(1)
}

func (m *MockNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository for testing
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ToggleCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStore is a domain.Store whose unit of work hands the same mock repositories to fn.
// Set AtomicErr to make Atomic fail before fn runs.
type MockStore struct {
	WalletRepo      *MockWalletRepository
	TransactionRepo *MockTransactionRepository
	StockRepo       *MockStockRepository
	AssetRepo       *MockAssetRepository
	BudgetPlanRepo  *MockBudgetPlanRepository
	NoteRepo        *MockNoteRepository
	TaskRepo        *MockTaskRepository

	AtomicErr   error
	AtomicCalls int
}

// NewMockStore creates a MockStore with fresh repository mocks
func NewMockStore() *MockStore {
	return &MockStore{
		WalletRepo:      new(MockWalletRepository),
		TransactionRepo: new(MockTransactionRepository),
		StockRepo:       new(MockStockRepository),
		AssetRepo:       new(MockAssetRepository),
		BudgetPlanRepo:  new(MockBudgetPlanRepository),
		NoteRepo:        new(MockNoteRepository),
		TaskRepo:        new(MockTaskRepository),
	}
}

func (s *MockStore) Wallets() domain.WalletRepository           { return s.WalletRepo }
func (s *MockStore) Transactions() domain.TransactionRepository { return s.TransactionRepo }
func (s *MockStore) Stocks() domain.StockRepository             { return s.StockRepo }
func (s *MockStore) Assets() domain.AssetRepository             { return s.AssetRepo }
func (s *MockStore) BudgetPlans() domain.BudgetPlanRepository   { return s.BudgetPlanRepo }
func (s *MockStore) Notes() domain.NoteRepository               { return s.NoteRepo }
func (s *MockStore) Tasks() domain.TaskRepository               { return s.TaskRepo }

func (s *MockStore) Atomic(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.AtomicCalls++
	if s.AtomicErr != nil {
		return s.AtomicErr
	}
	return fn(ctx, s)
}

// AssertExpectations asserts the expectations of every repository mock
func (s *MockStore) AssertExpectations(t *testing.T) {
	t.Helper()
	s.WalletRepo.AssertExpectations(t)
	s.TransactionRepo.AssertExpectations(t)
	s.StockRepo.AssertExpectations(t)
	s.AssetRepo.AssertExpectations(t)
	s.BudgetPlanRepo.AssertExpectations(t)
	s.NoteRepo.AssertExpectations(t)
	s.TaskRepo.AssertExpectations(t)
}
