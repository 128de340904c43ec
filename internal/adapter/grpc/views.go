package grpc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/usecase/aggregation"
	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
	"github.com/simaogato/walletflow-backend/internal/usecase/transfer"
)

// Response views. Decimals are encoded as strings so amounts survive the Struct round trip exactly.

type walletView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Detail          string          `json:"detail"`
	Balance         decimal.Decimal `json:"balance"`
	Cash            decimal.Decimal `json:"cash"`
	InvestmentValue decimal.Decimal `json:"investment_value"`
	GrossBalance    decimal.Decimal `json:"gross_balance"`
	Margin          decimal.Decimal `json:"margin"`
	Loan            decimal.Decimal `json:"loan"`
	NotMine         bool            `json:"not_mine"`
	CreatedAt       time.Time       `json:"created_at"`
}

func newWalletView(w *domain.Wallet) walletView {
	return walletView{
		ID:              w.ID.String(),
		Name:            w.Name,
		Type:            string(w.Type),
		Detail:          w.Detail,
		Balance:         w.Balance,
		Cash:            w.Cash,
		InvestmentValue: w.InvestmentValue,
		GrossBalance:    w.GrossBalance,
		Margin:          w.Margin,
		Loan:            w.Loan,
		NotMine:         w.NotMine,
		CreatedAt:       w.CreatedAt,
	}
}

type transactionView struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	WalletID    *string         `json:"wallet_id"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newTransactionView(tx *domain.Transaction) transactionView {
	view := transactionView{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
	if tx.HasWallet() {
		walletID := tx.WalletID.String()
		view.WalletID = &walletID
	}
	return view
}

type stockView struct {
	ID         string           `json:"id"`
	WalletID   string           `json:"wallet_id"`
	Code       string           `json:"code"`
	Volume     decimal.Decimal  `json:"volume"`
	StartPrice decimal.Decimal  `json:"start_price"`
	StartDate  time.Time        `json:"start_date"`
	SellPrice  *decimal.Decimal `json:"sell_price"`
	SellDate   *time.Time       `json:"sell_date"`
	IsHolding  bool             `json:"is_holding"`
	Margin     decimal.Decimal  `json:"margin"`
	CreatedAt  time.Time        `json:"created_at"`
}

func newStockView(p *domain.StockPosition) stockView {
	return stockView{
		ID:         p.ID.String(),
		WalletID:   p.WalletID.String(),
		Code:       p.Code,
		Volume:     p.Volume,
		StartPrice: p.StartPrice,
		StartDate:  p.StartDate,
		SellPrice:  p.SellPrice,
		SellDate:   p.SellDate,
		IsHolding:  p.IsHolding,
		Margin:     p.Margin,
		CreatedAt:  p.CreatedAt,
	}
}

type assetView struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	Notes     string          `json:"notes"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

func newAssetView(a *domain.Asset) assetView {
	return assetView{
		ID:        a.ID.String(),
		Type:      string(a.Type),
		Name:      a.Name,
		Amount:    a.Amount,
		Value:     a.Value,
		Currency:  a.Currency,
		Notes:     a.Notes,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
	}
}

type budgetPlanView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	Type      string          `json:"type"`
	Icon      string          `json:"icon"`
	CreatedAt time.Time       `json:"created_at"`
}

func newBudgetPlanView(p *domain.BudgetPlan) budgetPlanView {
	return budgetPlanView{
		ID:        p.ID.String(),
		Name:      p.Name,
		Value:     p.Value,
		Type:      string(p.Type),
		Icon:      p.Icon,
		CreatedAt: p.CreatedAt,
	}
}

type noteView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       string    `json:"tag"`
	Remark    bool      `json:"remark"`
	Image     string    `json:"image"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func newNoteView(n *domain.Note) noteView {
	return noteView{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Tag:       string(n.Tag),
		Remark:    n.Remark,
		Image:     n.Image,
		Date:      n.Date,
		CreatedAt: n.CreatedAt,
	}
}

type taskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTaskView(t *domain.Task) taskView {
	return taskView{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

type receiptView struct {
	From    walletView      `json:"from"`
	To      walletView      `json:"to"`
	Expense transactionView `json:"expense"`
	Income  transactionView `json:"income"`
}

func newReceiptView(r *transfer.Receipt) receiptView {
	return receiptView{
		From:    newWalletView(r.From),
		To:      newWalletView(r.To),
		Expense: newTransactionView(r.Expense),
		Income:  newTransactionView(r.Income),
	}
}

// listView wraps a list or rollup read. Degraded reads carry a warning instead of failing.
type listView[T any] struct {
	Items    T      `json:"items"`
	Degraded bool   `json:"degraded"`
	Warning  string `json:"warning,omitempty"`
}

func newListView[E, V any](res domain.Result[[]E], view func(E) V) listView[[]V] {
	items := make([]V, 0, len(res.Data))
	for _, e := range res.Data {
		items = append(items, view(e))
	}
	return listView[[]V]{Items: items, Degraded: res.IsDegraded(), Warning: warning(res.Cause)}
}

type totalsView[T any] struct {
	Totals   T      `json:"totals"`
	Degraded bool   `json:"degraded"`
	Warning  string `json:"warning,omitempty"`
}

func newTotalsView[T, V any](res domain.Result[T], view func(T) V) totalsView[V] {
	return totalsView[V]{Totals: view(res.Data), Degraded: res.IsDegraded(), Warning: warning(res.Cause)}
}

func warning(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}

type typeTotalView struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

type portfolioView struct {
	TotalPortfolioValue decimal.Decimal          `json:"total_portfolio_value"`
	ByType              map[string]typeTotalView `json:"by_type"`
}

func newPortfolioView(t aggregation.PortfolioTotals) portfolioView {
	view := portfolioView{
		TotalPortfolioValue: t.TotalPortfolioValue,
		ByType:              make(map[string]typeTotalView, len(t.ByType)),
	}
	for assetType, total := range t.ByType {
		view.ByType[string(assetType)] = typeTotalView{Count: total.Count, Value: total.Value}
	}
	return view
}

type transactionTotalsView struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func newTransactionTotalsView(t aggregation.TransactionTotals) transactionTotalsView {
	return transactionTotalsView{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

type walletTotalsView struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	Net          decimal.Decimal `json:"net"`
}

func newWalletTotalsView(t aggregation.WalletTotals) walletTotalsView {
	return walletTotalsView{TotalBalance: t.TotalBalance, TotalCredit: t.TotalCredit, Net: t.Net}
}

type quoteView struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"`
	Timestamp time.Time       `json:"timestamp"`
}

func newQuoteView(q *marketdata.Quote) *quoteView {
	if q == nil {
		return nil
	}
	return &quoteView{Symbol: q.Symbol, Price: q.Price, Change24h: q.Change24h, Timestamp: q.Timestamp}
}

type summaryView struct {
	Quotes    map[string]*quoteView `json:"quotes"`
	Timestamp time.Time             `json:"timestamp"`
}

func newSummaryView(s *marketdata.Summary) summaryView {
	view := summaryView{Quotes: make(map[string]*quoteView, len(s.Quotes)), Timestamp: s.Timestamp}
	for key, q := range s.Quotes {
		view.Quotes[key] = newQuoteView(q)
	}
	return view
}
