//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcadapter "github.com/simaogato/walletflow-backend/internal/adapter/grpc"
	"github.com/simaogato/walletflow-backend/internal/adapter/repository/sqlstore"
)

var (
	store      *sqlstore.Store
	grpcClient *grpcadapter.Client
)

// TestMain connects to the database and to a running server
func TestMain(m *testing.M) {
	ctx := context.Background()

	// 1. Connect to Database
	db, err := sqlstore.NewDB(ctx, sqlstore.DriverPostgres, getDBConnectionString())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	store = sqlstore.NewStore(db)

	// 2. Connect to gRPC Server
	grpcConn, err := grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}
	grpcClient = grpcadapter.NewClient(grpcConn)

	// Run tests
	code := m.Run()

	grpcConn.Close()
	db.Close()
	os.Exit(code)
}

// getAuthContext returns a context carrying the API token
func getAuthContext() context.Context {
	token := os.Getenv("WALLETFLOW_AUTH_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", token, grpcadapter.CallerHeader, "e2e")
}

// getDBConnectionString returns the database DSN from environment or defaults
func getDBConnectionString() string {
	if dsn := os.Getenv("WALLETFLOW_DB_DSN"); dsn != "" {
		return dsn
	}
	return "host=localhost port=5432 user=postgres password=postgres dbname=walletflow sslmode=disable"
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	if addr := os.Getenv("GRPC_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:8080"
}

func call(t *testing.T, method string, req map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp, err := grpcClient.Call(getAuthContext(), method, req)
	require.NoError(t, err, method)
	return resp
}

func callCode(method string, req map[string]interface{}) codes.Code {
	_, err := grpcClient.Call(getAuthContext(), method, req)
	return status.Code(err)
}

// newWallet creates a uniquely named wallet and sets its opening balance
func newWallet(t *testing.T, walletType, balance string) uuid.UUID {
	t.Helper()
	resp := call(t, "CreateWallet", map[string]interface{}{
		"name": fmt.Sprintf("e2e %s %s", walletType, uuid.NewString()[:8]),
		"type": walletType,
	})
	id := uuid.MustParse(resp["id"].(string))
	if balance != "" {
		call(t, "UpdateWallet", map[string]interface{}{"id": id.String(), "balance": balance})
	}
	t.Cleanup(func() { _ = store.Wallets().Delete(context.Background(), id) })
	return id
}

// storedBalance reads the balance straight from the database
func storedBalance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	w, err := store.Wallets().GetByID(context.Background(), id)
	require.NoError(t, err)
	return w.Balance
}

func TestEndToEndFlow(t *testing.T) {
	cashID := newWallet(t, "Cash", "")
	bankID := newWallet(t, "Bank", "50")

	// Step 1: Record income on the cash wallet
	income := call(t, "CreateTransaction", map[string]interface{}{
		"type":      "income",
		"amount":    "400.25",
		"category":  "Salary",
		"wallet_id": cashID.String(),
	})
	assert.True(t, decimal.RequireFromString("400.25").Equal(storedBalance(t, cashID)))

	// Step 2: Transfer to the bank
	receipt := call(t, "Transfer", map[string]interface{}{
		"from_wallet_id": cashID.String(),
		"to_wallet_id":   bankID.String(),
		"amount":         "300",
	})
	assert.Equal(t, "Transfer", receipt["expense"].(map[string]interface{})["category"])
	assert.True(t, decimal.RequireFromString("100.25").Equal(storedBalance(t, cashID)))
	assert.True(t, decimal.RequireFromString("350").Equal(storedBalance(t, bankID)))

	// Step 3: Deleting the income reverses it
	call(t, "DeleteTransaction", map[string]interface{}{"id": income["id"]})
	assert.True(t, decimal.RequireFromString("-299.75").Equal(storedBalance(t, cashID)))

	for _, key := range []string{"expense", "income"} {
		id := receipt[key].(map[string]interface{})["id"].(string)
		_ = store.Transactions().Delete(context.Background(), uuid.MustParse(id))
	}
}

func TestStockFlow(t *testing.T) {
	walletResp := call(t, "CreateWallet", map[string]interface{}{
		"name": "e2e broker " + uuid.NewString()[:8],
		"type": "Stock",
		"cash": "1000",
	})
	walletID := uuid.MustParse(walletResp["id"].(string))
	t.Cleanup(func() { _ = store.Wallets().Delete(context.Background(), walletID) })

	position := call(t, "OpenStock", map[string]interface{}{
		"wallet_id":   walletID.String(),
		"code":        "FPT",
		"volume":      "10",
		"start_price": "50",
	})
	t.Cleanup(func() { _ = store.Stocks().Delete(context.Background(), uuid.MustParse(position["id"].(string))) })

	call(t, "UpdateStock", map[string]interface{}{
		"id":         position["id"],
		"is_holding": false,
		"sell_price": "60",
	})

	w, err := store.Wallets().GetByID(context.Background(), walletID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1100).Equal(w.Cash))
	assert.True(t, w.InvestmentValue.IsZero())
	assert.True(t, decimal.NewFromInt(1100).Equal(w.GrossBalance))
}

func TestConcurrentTransfers(t *testing.T) {
	fromID := newWallet(t, "Cash", "100")
	toID := newWallet(t, "Bank", "")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := callCode("Transfer", map[string]interface{}{
				"from_wallet_id": fromID.String(),
				"to_wallet_id":   toID.String(),
				"amount":         "20",
			})
			if code == codes.OK {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.Equal(t, codes.FailedPrecondition, code)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.True(t, storedBalance(t, fromID).IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(storedBalance(t, toID)))
}

func TestOppositeTransfers(t *testing.T) {
	aID := newWallet(t, "Cash", "100")
	bID := newWallet(t, "Bank", "100")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		from, to := aID, bID
		if i%2 == 1 {
			from, to = bID, aID
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := callCode("Transfer", map[string]interface{}{
				"from_wallet_id": from.String(),
				"to_wallet_id":   to.String(),
				"amount":         "1",
			})
			assert.Equal(t, codes.OK, code)
		}()
	}
	wg.Wait()

	assert.True(t, decimal.NewFromInt(100).Equal(storedBalance(t, aID)))
	assert.True(t, decimal.NewFromInt(100).Equal(storedBalance(t, bID)))
}

func TestNegativeScenarios(t *testing.T) {
	cashID := newWallet(t, "Cash", "100")
	bankID := newWallet(t, "Bank", "")

	tests := []struct {
		name   string
		method string
		req    map[string]interface{}
		want   codes.Code
	}{
		{"Same wallet transfer", "Transfer", map[string]interface{}{"from_wallet_id": cashID.String(), "to_wallet_id": cashID.String(), "amount": "1"}, codes.InvalidArgument},
		{"Overdrawn transfer", "Transfer", map[string]interface{}{"from_wallet_id": cashID.String(), "to_wallet_id": bankID.String(), "amount": "500"}, codes.FailedPrecondition},
		{"Unknown wallet", "GetWallet", map[string]interface{}{"id": uuid.NewString()}, codes.NotFound},
		{"Unknown wallet type", "CreateWallet", map[string]interface{}{"name": "Jar", "type": "Piggy"}, codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, callCode(tt.method, tt.req))
		})
	}

	assert.True(t, decimal.NewFromInt(100).Equal(storedBalance(t, cashID)), "failed calls write nothing")

	_, err := grpcClient.Call(context.Background(), "ListWallets", nil)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestReadFlow(t *testing.T) {
	newWallet(t, "Savings", "10")

	wallets := call(t, "ListWallets", nil)
	assert.Equal(t, false, wallets["degraded"])
	assert.NotEmpty(t, wallets["items"])

	for _, method := range []string{"GetWalletTotals", "GetTransactionTotals", "GetPortfolioTotals"} {
		resp := call(t, method, nil)
		assert.Equal(t, false, resp["degraded"], method)
		assert.NotNil(t, resp["totals"], method)
	}
}
