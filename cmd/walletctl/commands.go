package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/adapter/repository/sqlstore"
	"github.com/simaogato/walletflow-backend/internal/config"
	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/identity"
	"github.com/simaogato/walletflow-backend/internal/logging"
	"github.com/simaogato/walletflow-backend/internal/usecase/aggregation"
	"github.com/simaogato/walletflow-backend/internal/usecase/wallet"
)

// operator is the caller recorded for CLI-initiated changes
var operator = identity.Caller{Subject: "walletctl"}

// env is what every command needs: a logger and an open database
type env struct {
	logger *logrus.Logger
	db     *sqlstore.DB
	store  *sqlstore.Store
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, "text", os.Stderr)
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.NewDB(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	return &env{logger: logger, db: db, store: sqlstore.NewStore(db)}, nil
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create missing tables and indexes" }
func (*migrateCmd) Usage() string {
	return `migrate

  Creates every table and index the server needs. Existing tables are left untouched.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.db.Close()

	if err := sqlstore.Migrate(ctx, e.db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("schema is up to date")
	return subcommands.ExitSuccess
}

type reconcileCmd struct {
	dryRun bool
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "recompute the gross balance of Stock wallets" }
func (*reconcileCmd) Usage() string {
	return `reconcile [-dry-run]

  Sets gross balance = cash + investment value on every Stock wallet where they disagree.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "only list the wallets that would be corrected")
}

func (c *reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.db.Close()

	if c.dryRun {
		wallets, err := e.store.Wallets().List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, w := range driftedStockWallets(wallets) {
			fmt.Printf("%s\t%s\tgross %s -> %s\n", w.ID, w.Name, w.GrossBalance, w.Cash.Add(w.InvestmentValue))
		}
		return subcommands.ExitSuccess
	}

	service := wallet.NewWalletService(e.store, e.logger)
	fixed, err := service.ReconcileStockWallets(identity.WithCaller(ctx, operator))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("corrected %d stock wallet(s)\n", len(fixed))
	return subcommands.ExitSuccess
}

// driftedStockWallets returns the Stock wallets whose gross balance disagrees with their parts
func driftedStockWallets(wallets []*domain.Wallet) []*domain.Wallet {
	var drifted []*domain.Wallet
	for _, w := range wallets {
		if w.GrossDrifted() {
			drifted = append(drifted, w)
		}
	}
	return drifted
}

type totalsCmd struct{}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "print wallet, transaction and portfolio totals" }
func (*totalsCmd) Usage() string {
	return `totals

  Prints the same rollups the server exposes over gRPC.
`
}
func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (*totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.db.Close()

	service := aggregation.NewAggregationService(e.store, e.logger)
	if err := printTotals(os.Stdout,
		service.GetWalletTotals(ctx),
		service.GetTransactionTotals(ctx),
		service.GetPortfolioTotals(ctx),
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printTotals writes the rollups as an aligned table. Degraded rollups are flagged.
func printTotals(
	out io.Writer,
	wallets domain.Result[aggregation.WalletTotals],
	txs domain.Result[aggregation.TransactionTotals],
	portfolio domain.Result[aggregation.PortfolioTotals],
) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	mark := func(degraded bool) string {
		if degraded {
			return " (unavailable)"
		}
		return ""
	}

	fmt.Fprintf(w, "WALLETS%s\t\n", mark(wallets.IsDegraded()))
	fmt.Fprintf(w, "  balance\t%s\n", wallets.Data.TotalBalance)
	fmt.Fprintf(w, "  credit\t%s\n", wallets.Data.TotalCredit)
	fmt.Fprintf(w, "  net\t%s\n", wallets.Data.Net)

	fmt.Fprintf(w, "TRANSACTIONS%s\t\n", mark(txs.IsDegraded()))
	fmt.Fprintf(w, "  income\t%s\n", txs.Data.Income)
	fmt.Fprintf(w, "  expense\t%s\n", txs.Data.Expense)
	fmt.Fprintf(w, "  balance\t%s\n", txs.Data.Balance)

	fmt.Fprintf(w, "PORTFOLIO%s\t\n", mark(portfolio.IsDegraded()))
	for _, assetType := range domain.AssetTypes {
		total := portfolio.Data.ByType[assetType]
		fmt.Fprintf(w, "  %s (%d)\t%s\n", assetType, total.Count, total.Value)
	}
	fmt.Fprintf(w, "  total\t%s\n", portfolio.Data.TotalPortfolioValue)

	return w.Flush()
}
