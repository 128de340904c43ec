package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ledgerRule describes how one wallet type reacts to money moving in or out.
// Transfers get their own pair of effects because a Credit source pays down its loan
// (the same direction as income), which differs from a Credit expense.
type ledgerRule struct {
	income      func(w *Wallet, amount decimal.Decimal)
	expense     func(w *Wallet, amount decimal.Decimal)
	transferOut func(w *Wallet, amount decimal.Decimal)
	transferIn  func(w *Wallet, amount decimal.Decimal)

	// available returns the funds a transfer may draw from the wallet.
	// exempt is true for types without a solvency check.
	available func(w *Wallet) (funds decimal.Decimal, exempt bool)
}

var (
	balanceRule = ledgerRule{
		income:      addBalance,
		expense:     subBalance,
		transferOut: subBalance,
		transferIn:  addBalance,
		available:   func(w *Wallet) (decimal.Decimal, bool) { return w.Balance, false },
	}

	stockRule = ledgerRule{
		income:      addStockCash,
		expense:     subStockCash,
		transferOut: subStockCash,
		transferIn:  addStockCash,
		available:   func(w *Wallet) (decimal.Decimal, bool) { return w.Cash, false },
	}

	creditRule = ledgerRule{
		income:      reduceLoan,
		expense:     increaseLoan,
		transferOut: reduceLoan,
		transferIn:  increaseLoan,
		available:   func(w *Wallet) (decimal.Decimal, bool) { return decimal.Zero, true },
	}
)

// ledgerRules is the single dispatch table for wallet effects.
// Adding a wallet type means adding one entry here.
var ledgerRules = map[WalletType]ledgerRule{
	WalletTypeCash:    balanceRule,
	WalletTypeBank:    balanceRule,
	WalletTypeSavings: balanceRule,
	WalletTypeAssets:  balanceRule,
	WalletTypeStock:   stockRule,
	WalletTypeCredit:  creditRule,
}

func addBalance(w *Wallet, amount decimal.Decimal) {
	w.Balance = w.Balance.Add(amount)
}

func subBalance(w *Wallet, amount decimal.Decimal) {
	w.Balance = w.Balance.Sub(amount)
}

func addStockCash(w *Wallet, amount decimal.Decimal) {
	w.Balance = w.Balance.Add(amount)
	w.Cash = w.Cash.Add(amount)
}

func subStockCash(w *Wallet, amount decimal.Decimal) {
	w.Balance = w.Balance.Sub(amount)
	w.Cash = w.Cash.Sub(amount)
}

func reduceLoan(w *Wallet, amount decimal.Decimal) {
	w.Loan = w.Loan.Sub(amount)
}

func increaseLoan(w *Wallet, amount decimal.Decimal) {
	w.Loan = w.Loan.Add(amount)
}

func ruleFor(w *Wallet) (ledgerRule, error) {
	rule, ok := ledgerRules[w.Type]
	if !ok {
		return ledgerRule{}, fmt.Errorf("%w: unknown wallet type %q", ErrInvalidArgument, w.Type)
	}
	return rule, nil
}

func apply(w *Wallet, amount decimal.Decimal, pick func(ledgerRule) func(*Wallet, decimal.Decimal)) error {
	rule, err := ruleFor(w)
	if err != nil {
		return err
	}
	pick(rule)(w, amount)
	w.Settle()
	return nil
}

// ApplyIncome records money entering the wallet.
// Credit wallets reduce their loan; every other type grows its balance, and Stock wallets
// also grow their cash.
func ApplyIncome(w *Wallet, amount decimal.Decimal) error {
	return apply(w, amount, func(r ledgerRule) func(*Wallet, decimal.Decimal) { return r.income })
}

// ApplyExpense records money leaving the wallet. It is the exact inverse of ApplyIncome.
func ApplyExpense(w *Wallet, amount decimal.Decimal) error {
	return apply(w, amount, func(r ledgerRule) func(*Wallet, decimal.Decimal) { return r.expense })
}

// ApplyTransactionEffect applies the ledger effect of a transaction of the given type
func ApplyTransactionEffect(w *Wallet, txType TransactionType, amount decimal.Decimal) error {
	switch txType {
	case TransactionTypeIncome:
		return ApplyIncome(w, amount)
	case TransactionTypeExpense:
		return ApplyExpense(w, amount)
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidArgument, txType)
	}
}

// ReverseTransactionEffect undoes ApplyTransactionEffect: an income is removed as if it were
// an expense of the same amount and vice versa
func ReverseTransactionEffect(w *Wallet, txType TransactionType, amount decimal.Decimal) error {
	switch txType {
	case TransactionTypeIncome:
		return ApplyExpense(w, amount)
	case TransactionTypeExpense:
		return ApplyIncome(w, amount)
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidArgument, txType)
	}
}

// CheckTransferFunds verifies that the wallet can send amount.
// Stock wallets are checked against cash, Credit wallets are exempt, everything else is
// checked against balance.
func CheckTransferFunds(w *Wallet, amount decimal.Decimal) error {
	rule, err := ruleFor(w)
	if err != nil {
		return err
	}
	funds, exempt := rule.available(w)
	if exempt {
		return nil
	}
	if funds.LessThan(amount) {
		return fmt.Errorf("%w: wallet %q has %s available, transfer needs %s",
			ErrInsufficientFunds, w.Name, funds.String(), amount.String())
	}
	return nil
}

// ApplyTransferOut records the source side of a transfer
func ApplyTransferOut(w *Wallet, amount decimal.Decimal) error {
	return apply(w, amount, func(r ledgerRule) func(*Wallet, decimal.Decimal) { return r.transferOut })
}

// ApplyTransferIn records the destination side of a transfer
func ApplyTransferIn(w *Wallet, amount decimal.Decimal) error {
	return apply(w, amount, func(r ledgerRule) func(*Wallet, decimal.Decimal) { return r.transferIn })
}
