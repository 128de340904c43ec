package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// CreateBudgetPlanInput represents the input for creating a budget plan
type CreateBudgetPlanInput struct {
	Name  string
	Value decimal.Decimal
	Type  domain.PlanType
	Icon  string
}

// UpdateBudgetPlanInput represents an edit of a budget plan. Nil fields are left unchanged.
type UpdateBudgetPlanInput struct {
	Name  *string
	Value *decimal.Decimal
	Type  *domain.PlanType
	Icon  *string
}

// BudgetService handles budget plan operations
type BudgetService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewBudgetService creates a new BudgetService instance
func NewBudgetService(store domain.Store, logger logrus.FieldLogger) *BudgetService {
	return &BudgetService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateBudgetPlan creates a budget plan
func (s *BudgetService) CreateBudgetPlan(ctx context.Context, input CreateBudgetPlanInput) (*domain.BudgetPlan, error) {
	plan := &domain.BudgetPlan{
		ID:        uuid.New(),
		Name:      input.Name,
		Value:     input.Value,
		Type:      input.Type,
		Icon:      input.Icon,
		CreatedAt: s.Now().UTC(),
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.BudgetPlans().Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetBudgetPlan retrieves a budget plan by its ID
func (s *BudgetService) GetBudgetPlan(ctx context.Context, id uuid.UUID) (*domain.BudgetPlan, error) {
	return s.Store.BudgetPlans().GetByID(ctx, id)
}

// ListBudgetPlans retrieves budget plans ordered by name.
// An unknown planType is ignored and every plan is returned.
func (s *BudgetService) ListBudgetPlans(ctx context.Context, planType string) domain.Result[[]*domain.BudgetPlan] {
	filter := domain.PlanType(planType)
	if !filter.IsValid() {
		filter = ""
	}

	plans, err := s.Store.BudgetPlans().List(ctx, filter)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list budget plans, returning empty list")
		return domain.Degraded([]*domain.BudgetPlan{}, err)
	}
	return domain.Ok(plans)
}

// UpdateBudgetPlan edits a budget plan
func (s *BudgetService) UpdateBudgetPlan(ctx context.Context, id uuid.UUID, input UpdateBudgetPlanInput) (*domain.BudgetPlan, error) {
	var updated *domain.BudgetPlan
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		plan, err := repos.BudgetPlans().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			plan.Name = *input.Name
		}
		if input.Value != nil {
			plan.Value = *input.Value
		}
		if input.Type != nil {
			plan.Type = *input.Type
		}
		if input.Icon != nil {
			plan.Icon = *input.Icon
		}

		if err := plan.Validate(); err != nil {
			return err
		}
		if err := repos.BudgetPlans().Update(ctx, plan); err != nil {
			return err
		}
		updated = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBudgetPlan removes a budget plan
func (s *BudgetService) DeleteBudgetPlan(ctx context.Context, id uuid.UUID) error {
	return s.Store.BudgetPlans().Delete(ctx, id)
}
