package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/usecase/aggregation"
	"github.com/simaogato/walletflow-backend/internal/usecase/asset"
	"github.com/simaogato/walletflow-backend/internal/usecase/budget"
	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
	"github.com/simaogato/walletflow-backend/internal/usecase/note"
	"github.com/simaogato/walletflow-backend/internal/usecase/stock"
	"github.com/simaogato/walletflow-backend/internal/usecase/task"
	"github.com/simaogato/walletflow-backend/internal/usecase/transaction"
	"github.com/simaogato/walletflow-backend/internal/usecase/transfer"
	"github.com/simaogato/walletflow-backend/internal/usecase/wallet"
)

// Server implements the WalletFlowService gRPC server
type Server struct {
	WalletService      *wallet.WalletService
	TransactionService *transaction.TransactionService
	StockService       *stock.StockService
	TransferService    *transfer.TransferService
	AssetService       *asset.AssetService
	BudgetService      *budget.BudgetService
	NoteService        *note.NoteService
	TaskService        *task.TaskService
	AggregationService *aggregation.AggregationService
	MarketDataService  *marketdata.MarketDataService
}

var _ WalletFlowServiceServer = (*Server)(nil)

// Services groups the use cases served over gRPC
type Services struct {
	Wallets      *wallet.WalletService
	Transactions *transaction.TransactionService
	Stocks       *stock.StockService
	Transfers    *transfer.TransferService
	Assets       *asset.AssetService
	Budgets      *budget.BudgetService
	Notes        *note.NoteService
	Tasks        *task.TaskService
	Aggregation  *aggregation.AggregationService
	MarketData   *marketdata.MarketDataService
}

// NewServer creates a new gRPC server instance
func NewServer(services Services) *Server {
	return &Server{
		WalletService:      services.Wallets,
		TransactionService: services.Transactions,
		StockService:       services.Stocks,
		TransferService:    services.Transfers,
		AssetService:       services.Assets,
		BudgetService:      services.Budgets,
		NoteService:        services.Notes,
		TaskService:        services.Tasks,
		AggregationService: services.Aggregation,
		MarketDataService:  services.MarketData,
	}
}

type idRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// empty is the response of delete RPCs
var empty = struct{}{}

// Wallets

type createWalletRequest struct {
	Name            string           `json:"name" validate:"required"`
	Type            string           `json:"type" validate:"required,oneof=Cash Bank Stock Savings Assets Credit"`
	Detail          string           `json:"detail"`
	Cash            *decimal.Decimal `json:"cash"`
	InvestmentValue *decimal.Decimal `json:"investment_value"`
	Margin          *decimal.Decimal `json:"margin"`
	Loan            *decimal.Decimal `json:"loan"`
	NotMine         bool             `json:"not_mine"`
}

type updateWalletRequest struct {
	ID              string           `json:"id" validate:"required,uuid"`
	Name            *string          `json:"name" validate:"omitempty,min=1"`
	Detail          *string          `json:"detail"`
	Balance         *decimal.Decimal `json:"balance"`
	Cash            *decimal.Decimal `json:"cash"`
	InvestmentValue *decimal.Decimal `json:"investment_value"`
	Margin          *decimal.Decimal `json:"margin"`
	Loan            *decimal.Decimal `json:"loan"`
	NotMine         *bool            `json:"not_mine"`
}

// CreateWallet handles the CreateWallet RPC
func (s *Server) CreateWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createWalletRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	w, err := s.WalletService.CreateWallet(ctx, wallet.CreateWalletInput{
		Name:            in.Name,
		Type:            domain.WalletType(in.Type),
		Detail:          in.Detail,
		Cash:            orZero(in.Cash),
		InvestmentValue: orZero(in.InvestmentValue),
		Margin:          orZero(in.Margin),
		Loan:            orZero(in.Loan),
		NotMine:         in.NotMine,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newWalletView(w))
}

// GetWallet handles the GetWallet RPC
func (s *Server) GetWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	w, err := s.WalletService.GetWallet(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newWalletView(w))
}

// ListWallets handles the ListWallets RPC
func (s *Server) ListWallets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newListView(s.WalletService.ListWallets(ctx), newWalletView))
}

// UpdateWallet handles the UpdateWallet RPC
func (s *Server) UpdateWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateWalletRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	w, err := s.WalletService.UpdateWallet(ctx, id, wallet.UpdateWalletInput{
		Name:            in.Name,
		Detail:          in.Detail,
		Balance:         in.Balance,
		Cash:            in.Cash,
		InvestmentValue: in.InvestmentValue,
		Margin:          in.Margin,
		Loan:            in.Loan,
		NotMine:         in.NotMine,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newWalletView(w))
}

// DeleteWallet handles the DeleteWallet RPC
func (s *Server) DeleteWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.WalletService.DeleteWallet(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Transactions

type createTransactionRequest struct {
	Type        string           `json:"type" validate:"required,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	WalletID    *string          `json:"wallet_id" validate:"omitempty,uuid"`
	Date        *time.Time       `json:"date"`
}

type updateTransactionRequest struct {
	ID          string           `json:"id" validate:"required,uuid"`
	Type        *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Date        *time.Time       `json:"date"`
}

// CreateTransaction handles the CreateTransaction RPC
func (s *Server) CreateTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createTransactionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	// Parse optional wallet link
	walletID, err := parseOptionalID("wallet_id", in.WalletID)
	if err != nil {
		return nil, err
	}

	// Build input for usecase
	input := transaction.CreateTransactionInput{
		Type:        domain.TransactionType(in.Type),
		Amount:      *in.Amount,
		Description: in.Description,
		Category:    in.Category,
		WalletID:    walletID,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}

	// Call usecase service
	tx, err := s.TransactionService.CreateTransaction(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	return encode(newTransactionView(tx))
}

// GetTransaction handles the GetTransaction RPC
func (s *Server) GetTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.TransactionService.GetTransaction(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTransactionView(tx))
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newListView(s.TransactionService.ListTransactions(ctx), newTransactionView))
}

// UpdateTransaction handles the UpdateTransaction RPC
func (s *Server) UpdateTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateTransactionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	input := transaction.UpdateTransactionInput{
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
	}
	if in.Type != nil {
		txType := domain.TransactionType(*in.Type)
		input.Type = &txType
	}

	tx, err := s.TransactionService.UpdateTransaction(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTransactionView(tx))
}

// DeleteTransaction handles the DeleteTransaction RPC
func (s *Server) DeleteTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.TransactionService.DeleteTransaction(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Stocks

type openStockRequest struct {
	WalletID   string           `json:"wallet_id" validate:"required,uuid"`
	Code       string           `json:"code" validate:"required"`
	Volume     *decimal.Decimal `json:"volume" validate:"required"`
	StartPrice *decimal.Decimal `json:"start_price" validate:"required"`
	StartDate  *time.Time       `json:"start_date"`
	Margin     *decimal.Decimal `json:"margin"`
}

type updateStockRequest struct {
	ID         string           `json:"id" validate:"required,uuid"`
	Code       *string          `json:"code" validate:"omitempty,min=1"`
	Volume     *decimal.Decimal `json:"volume"`
	StartPrice *decimal.Decimal `json:"start_price"`
	StartDate  *time.Time       `json:"start_date"`
	SellPrice  *decimal.Decimal `json:"sell_price"`
	SellDate   *time.Time       `json:"sell_date"`
	IsHolding  *bool            `json:"is_holding"`
	Margin     *decimal.Decimal `json:"margin"`
}

type listStocksRequest struct {
	WalletID *string `json:"wallet_id" validate:"omitempty,uuid"`
}

// OpenStock handles the OpenStock RPC
func (s *Server) OpenStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in openStockRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	walletID, err := parseID("wallet_id", in.WalletID)
	if err != nil {
		return nil, err
	}

	input := stock.OpenStockInput{
		WalletID:   walletID,
		Code:       in.Code,
		Volume:     *in.Volume,
		StartPrice: *in.StartPrice,
		Margin:     orZero(in.Margin),
	}
	if in.StartDate != nil {
		input.StartDate = *in.StartDate
	}

	position, err := s.StockService.OpenStock(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newStockView(position))
}

// GetStock handles the GetStock RPC
func (s *Server) GetStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	position, err := s.StockService.GetStock(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newStockView(position))
}

// ListStocks handles the ListStocks RPC
func (s *Server) ListStocks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listStocksRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	walletID, err := parseOptionalID("wallet_id", in.WalletID)
	if err != nil {
		return nil, err
	}
	return encode(newListView(s.StockService.ListStocks(ctx, walletID), newStockView))
}

// UpdateStock handles the UpdateStock RPC. Sending is_holding=false with a sell_price closes
// the position.
func (s *Server) UpdateStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateStockRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	position, err := s.StockService.UpdateStock(ctx, id, stock.UpdateStockInput{
		Code:       in.Code,
		Volume:     in.Volume,
		StartPrice: in.StartPrice,
		StartDate:  in.StartDate,
		SellPrice:  in.SellPrice,
		SellDate:   in.SellDate,
		IsHolding:  in.IsHolding,
		Margin:     in.Margin,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newStockView(position))
}

// DeleteStock handles the DeleteStock RPC
func (s *Server) DeleteStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.StockService.DeleteStock(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Transfers

type transferRequest struct {
	FromWalletID string           `json:"from_wallet_id" validate:"required,uuid"`
	ToWalletID   string           `json:"to_wallet_id" validate:"required,uuid"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Description  string           `json:"description"`
}

// Transfer handles the Transfer RPC
func (s *Server) Transfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in transferRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	// Parse wallet IDs
	fromID, err := parseID("from_wallet_id", in.FromWalletID)
	if err != nil {
		return nil, err
	}
	toID, err := parseID("to_wallet_id", in.ToWalletID)
	if err != nil {
		return nil, err
	}

	// Call usecase service
	receipt, err := s.TransferService.Transfer(ctx, transfer.TransferInput{
		FromWalletID: fromID,
		ToWalletID:   toID,
		Amount:       *in.Amount,
		Description:  in.Description,
	})
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	return encode(newReceiptView(receipt))
}

func decodeID(req *structpb.Struct) (uuid.UUID, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return uuid.Nil, err
	}
	return parseID("id", in.ID)
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
