package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WalletRepository defines the interface for wallet persistence operations.
// Inside Store.Atomic, GetByID locks the wallet row until the unit of work ends.
type WalletRepository interface {
	// GetByID retrieves a wallet by its ID, wrapping ErrNotFound when it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)

	// List retrieves all wallets, newest first
	List(ctx context.Context) ([]*Wallet, error)

	// Create creates a new wallet
	Create(ctx context.Context, wallet *Wallet) error

	// Update persists every field of an existing wallet
	Update(ctx context.Context, wallet *Wallet) error

	// Delete removes a wallet. Transactions and stocks referencing it are left in place.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// List retrieves all transactions, most recent date first
	List(ctx context.Context) ([]*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Update persists the editable fields of a transaction (type, amount, description, category, date)
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockRepository defines the interface for stock position persistence operations
type StockRepository interface {
	// GetByID retrieves a stock position by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*StockPosition, error)

	// List retrieves stock positions, most recent start date first.
	// If walletID is nil, returns positions of every wallet.
	List(ctx context.Context, walletID *uuid.UUID) ([]*StockPosition, error)

	// Create creates a new stock position
	Create(ctx context.Context, stock *StockPosition) error

	// Update persists every field of an existing stock position
	Update(ctx context.Context, stock *StockPosition) error

	// Delete removes a stock position
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// List retrieves all assets, most recent date first
	List(ctx context.Context) ([]*Asset, error)

	Create(ctx context.Context, asset *Asset) error
	Update(ctx context.Context, asset *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetPlanRepository defines the interface for budget plan persistence operations
type BudgetPlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BudgetPlan, error)

	// List retrieves budget plans ordered by name.
	// If typeFilter is empty, returns all plans.
	List(ctx context.Context, typeFilter PlanType) ([]*BudgetPlan, error)

	Create(ctx context.Context, plan *BudgetPlan) error
	Update(ctx context.Context, plan *BudgetPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteFilter restricts a note listing. Zero fields do not filter.
type NoteFilter struct {
	Tag   NoteTag
	Since time.Time // notes dated at or after Since
}

// NoteRepository defines the interface for note persistence operations
type NoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)

	// List retrieves the notes matching filter, most recent date first
	List(ctx context.Context, filter NoteFilter) ([]*Note, error)

	Create(ctx context.Context, note *Note) error
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// List retrieves all tasks, oldest first
	List(ctx context.Context) ([]*Task, error)

	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error

	// ToggleCompleted flips the completed flag in place, without a read-modify-write
	ToggleCompleted(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories groups the repositories available to a use case
type Repositories interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Stocks() StockRepository
	Assets() AssetRepository
	BudgetPlans() BudgetPlanRepository
	Notes() NoteRepository
	Tasks() TaskRepository
}

// Store is the persistence collaborator.
// Its embedded Repositories run each call on its own; Atomic groups calls into one unit of work.
type Store interface {
	Repositories

	// Atomic runs fn inside a single unit of work. The repositories handed to fn share it:
	// if fn returns an error nothing it wrote is committed, otherwise everything is.
	Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
