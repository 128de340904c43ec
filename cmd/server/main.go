package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/walletflow-backend/internal/adapter/grpc"
	"github.com/simaogato/walletflow-backend/internal/adapter/quotes"
	"github.com/simaogato/walletflow-backend/internal/adapter/repository/sqlstore"
	"github.com/simaogato/walletflow-backend/internal/config"
	"github.com/simaogato/walletflow-backend/internal/logging"
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

const (
	dbConnectAttempts = 5
	dbConnectWait     = 2 * time.Second
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default: ./walletflow.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// 1. Setup Database
	ctx := context.Background()
	db, err := connect(ctx, cfg.DB, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	store := sqlstore.NewStore(db)

	// 2. Initialize Market Data Providers
	marketDataService := marketdata.NewMarketDataService(
		quotes.NewCoinGecko(cfg.Market.CoinGeckoURL, nil),
		quotes.NewYahoo(cfg.Market.YahooURL, nil),
		quotes.NewCoinbaseGold(cfg.Market.CoinbaseURL, nil),
		marketdata.Config{
			Timeout:   cfg.Market.Timeout,
			CacheTTL:  cfg.Market.CacheTTL,
			RateLimit: rate.Limit(cfg.Market.Rate),
			RateBurst: cfg.Market.Burst,
		},
		logger,
	)

	// 3. Initialize Services (Use Cases)
	services := grpcadapter.Services{
		Wallets:      wallet.NewWalletService(store, logger),
		Transactions: transaction.NewTransactionService(store, logger),
		Stocks:       stock.NewStockService(store, logger),
		Transfers:    transfer.NewTransferService(store, logger),
		Assets:       asset.NewAssetService(store, logger),
		Budgets:      budget.NewBudgetService(store, logger),
		Notes:        note.NewNoteService(store, logger),
		Tasks:        task.NewTaskService(store, logger),
		Aggregation:  aggregation.NewAggregationService(store, logger),
		MarketData:   marketDataService,
	}

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.AuthToken),
		),
	)
	grpcadapter.RegisterWalletFlowServiceServer(grpcServer, grpcadapter.NewServer(services))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		logger.WithError(err).Fatalf("Failed to listen on %s", cfg.GRPCPort)
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("addr", cfg.GRPCPort).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.WithError(err).Fatal("Failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, logger)
}

// connect opens the database, retrying while it is still starting up
func connect(ctx context.Context, cfg config.DBConfig, logger logrus.FieldLogger) (*sqlstore.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err := sqlstore.NewDB(ctx, cfg.Driver, cfg.DSN)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.WithError(err).WithField("attempt", attempt).Warn("Database not ready, retrying")
		time.Sleep(dbConnectWait)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", dbConnectAttempts, lastErr)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, logger logrus.FieldLogger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("Shutting down gracefully")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
