package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanType represents whether a budget plan targets income or expenses
type PlanType string

const (
	PlanTypeIncome  PlanType = "income"
	PlanTypeExpense PlanType = "expense"
)

// IsValid reports whether t is income or expense
func (t PlanType) IsValid() bool {
	return t == PlanTypeIncome || t == PlanTypeExpense
}

// BudgetPlan is a budgeted amount for one category
type BudgetPlan struct {
	ID        uuid.UUID
	Name      string // category name
	Value     decimal.Decimal
	Type      PlanType
	Icon      string
	CreatedAt time.Time
}

// Validate ensures the plan adheres to domain rules
func (p *BudgetPlan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: budget plan name cannot be empty", ErrInvalidArgument)
	}
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: plan type must be 'income' or 'expense'", ErrInvalidArgument)
	}
	return nil
}
