package grpc

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/usecase/asset"
	"github.com/simaogato/walletflow-backend/internal/usecase/budget"
	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
)

// Assets

type createAssetRequest struct {
	Type     string           `json:"type" validate:"required,oneof=Money Bank Gold Crypto Stock Loan"`
	Name     string           `json:"name" validate:"required"`
	Amount   *decimal.Decimal `json:"amount"`
	Value    *decimal.Decimal `json:"value" validate:"required"`
	Currency string           `json:"currency" validate:"omitempty,len=3"`
	Notes    string           `json:"notes"`
	Date     *time.Time       `json:"date"`
}

type updateAssetRequest struct {
	ID       string           `json:"id" validate:"required,uuid"`
	Type     *string          `json:"type" validate:"omitempty,oneof=Money Bank Gold Crypto Stock Loan"`
	Name     *string          `json:"name" validate:"omitempty,min=1"`
	Amount   *decimal.Decimal `json:"amount"`
	Value    *decimal.Decimal `json:"value"`
	Currency *string          `json:"currency" validate:"omitempty,len=3"`
	Notes    *string          `json:"notes"`
	Date     *time.Time       `json:"date"`
}

// CreateAsset handles the CreateAsset RPC
func (s *Server) CreateAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createAssetRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	input := asset.CreateAssetInput{
		Type:     domain.AssetType(in.Type),
		Name:     in.Name,
		Amount:   orZero(in.Amount),
		Value:    *in.Value,
		Currency: in.Currency,
		Notes:    in.Notes,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}

	a, err := s.AssetService.CreateAsset(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newAssetView(a))
}

// GetAsset handles the GetAsset RPC
func (s *Server) GetAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	a, err := s.AssetService.GetAsset(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newAssetView(a))
}

// ListAssets handles the ListAssets RPC
func (s *Server) ListAssets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newListView(s.AssetService.ListAssets(ctx), newAssetView))
}

// UpdateAsset handles the UpdateAsset RPC
func (s *Server) UpdateAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateAssetRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	input := asset.UpdateAssetInput{
		Name:     in.Name,
		Amount:   in.Amount,
		Value:    in.Value,
		Currency: in.Currency,
		Notes:    in.Notes,
		Date:     in.Date,
	}
	if in.Type != nil {
		assetType := domain.AssetType(*in.Type)
		input.Type = &assetType
	}

	a, err := s.AssetService.UpdateAsset(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newAssetView(a))
}

// DeleteAsset handles the DeleteAsset RPC
func (s *Server) DeleteAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.AssetService.DeleteAsset(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Budget plans

type createBudgetPlanRequest struct {
	Name  string           `json:"name" validate:"required"`
	Value *decimal.Decimal `json:"value" validate:"required"`
	Type  string           `json:"type" validate:"required,oneof=income expense"`
	Icon  string           `json:"icon"`
}

type updateBudgetPlanRequest struct {
	ID    string           `json:"id" validate:"required,uuid"`
	Name  *string          `json:"name" validate:"omitempty,min=1"`
	Value *decimal.Decimal `json:"value"`
	Type  *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Icon  *string          `json:"icon"`
}

// listBudgetPlansRequest filters by type; an unknown type lists every plan
type listBudgetPlansRequest struct {
	Type string `json:"type"`
}

// CreateBudgetPlan handles the CreateBudgetPlan RPC
func (s *Server) CreateBudgetPlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createBudgetPlanRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	plan, err := s.BudgetService.CreateBudgetPlan(ctx, budget.CreateBudgetPlanInput{
		Name:  in.Name,
		Value: *in.Value,
		Type:  domain.PlanType(in.Type),
		Icon:  in.Icon,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newBudgetPlanView(plan))
}

// GetBudgetPlan handles the GetBudgetPlan RPC
func (s *Server) GetBudgetPlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	plan, err := s.BudgetService.GetBudgetPlan(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newBudgetPlanView(plan))
}

// ListBudgetPlans handles the ListBudgetPlans RPC
func (s *Server) ListBudgetPlans(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listBudgetPlansRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	return encode(newListView(s.BudgetService.ListBudgetPlans(ctx, in.Type), newBudgetPlanView))
}

// UpdateBudgetPlan handles the UpdateBudgetPlan RPC
func (s *Server) UpdateBudgetPlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateBudgetPlanRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	input := budget.UpdateBudgetPlanInput{
		Name:  in.Name,
		Value: in.Value,
		Icon:  in.Icon,
	}
	if in.Type != nil {
		planType := domain.PlanType(*in.Type)
		input.Type = &planType
	}

	plan, err := s.BudgetService.UpdateBudgetPlan(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newBudgetPlanView(plan))
}

// DeleteBudgetPlan handles the DeleteBudgetPlan RPC
func (s *Server) DeleteBudgetPlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.BudgetService.DeleteBudgetPlan(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Totals

// GetPortfolioTotals handles the GetPortfolioTotals RPC
func (s *Server) GetPortfolioTotals(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newTotalsView(s.AggregationService.GetPortfolioTotals(ctx), newPortfolioView))
}

// GetTransactionTotals handles the GetTransactionTotals RPC
func (s *Server) GetTransactionTotals(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newTotalsView(s.AggregationService.GetTransactionTotals(ctx), newTransactionTotalsView))
}

// GetWalletTotals handles the GetWalletTotals RPC
func (s *Server) GetWalletTotals(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newTotalsView(s.AggregationService.GetWalletTotals(ctx), newWalletTotalsView))
}

// Market data

type marketQuoteRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=crypto stock gold"`
	Symbol string `json:"symbol" validate:"required_unless=Kind gold"`
}

// GetMarketQuote handles the GetMarketQuote RPC
func (s *Server) GetMarketQuote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in marketQuoteRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	quote, err := s.MarketDataService.GetQuote(ctx, marketdata.Kind(in.Kind), in.Symbol)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newQuoteView(quote))
}

// GetMarketSummary handles the GetMarketSummary RPC. Indicators whose source failed are null.
func (s *Server) GetMarketSummary(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	summary, err := s.MarketDataService.GetSummary(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newSummaryView(summary))
}
