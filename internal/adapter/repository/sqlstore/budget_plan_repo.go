package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const budgetPlanColumns = `id, name, value, type, icon, created_at`

type budgetPlanRow struct {
	ID        uuid.UUID       `db:"id"`
	Name      string          `db:"name"`
	Value     decimal.Decimal `db:"value"`
	Type      string          `db:"type"`
	Icon      string          `db:"icon"`
	CreatedAt time.Time       `db:"created_at"`
}

func newBudgetPlanRow(p *domain.BudgetPlan) budgetPlanRow {
	return budgetPlanRow{
		ID:        p.ID,
		Name:      p.Name,
		Value:     p.Value,
		Type:      string(p.Type),
		Icon:      p.Icon,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func (r budgetPlanRow) toDomain() *domain.BudgetPlan {
	return &domain.BudgetPlan{
		ID:        r.ID,
		Name:      r.Name,
		Value:     r.Value,
		Type:      domain.PlanType(r.Type),
		Icon:      r.Icon,
		CreatedAt: r.CreatedAt,
	}
}

// budgetPlanRepository implements domain.BudgetPlanRepository
type budgetPlanRepository struct {
	q sqlx.ExtContext
}

func (r *budgetPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetPlan, error) {
	var row budgetPlanRow
	query := r.q.Rebind(`SELECT ` + budgetPlanColumns + ` FROM budget_plans WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("budget plan", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves budget plans ordered by name, optionally restricted to one type
func (r *budgetPlanRepository) List(ctx context.Context, typeFilter domain.PlanType) ([]*domain.BudgetPlan, error) {
	query := `SELECT ` + budgetPlanColumns + ` FROM budget_plans`
	var args []interface{}
	if typeFilter != "" {
		query += ` WHERE type = ?`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY name`

	var rows []budgetPlanRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, unavailable("failed to list budget plans", err)
	}

	plans := make([]*domain.BudgetPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, row.toDomain())
	}
	return plans, nil
}

func (r *budgetPlanRepository) Create(ctx context.Context, plan *domain.BudgetPlan) error {
	query := `
		INSERT INTO budget_plans (` + budgetPlanColumns + `)
		VALUES (:id, :name, :value, :type, :icon, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newBudgetPlanRow(plan)); err != nil {
		return unavailable("failed to insert budget plan", err)
	}
	return nil
}

func (r *budgetPlanRepository) Update(ctx context.Context, plan *domain.BudgetPlan) error {
	query := `
		UPDATE budget_plans
		SET name = :name, value = :value, type = :type, icon = :icon
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newBudgetPlanRow(plan))
	return expectOne("budget plan", plan.ID, res, err)
}

func (r *budgetPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM budget_plans WHERE id = ?`), id)
	return expectOne("budget plan", id, res, err)
}
