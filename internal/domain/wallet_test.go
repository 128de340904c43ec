package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWallet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		wallet  Wallet
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Cash wallet with name should pass",
			wallet:  Wallet{ID: uuid.New(), Name: "Pocket", Type: WalletTypeCash},
			wantErr: false,
		},
		{
			name:    "Credit wallet with name should pass",
			wallet:  Wallet{ID: uuid.New(), Name: "Visa", Type: WalletTypeCredit},
			wantErr: false,
		},
		{
			name:    "Wallet with empty name should fail",
			wallet:  Wallet{ID: uuid.New(), Name: "", Type: WalletTypeBank},
			wantErr: true,
			errMsg:  "wallet name cannot be empty",
		},
		{
			name:    "Wallet with unknown type should fail",
			wallet:  Wallet{ID: uuid.New(), Name: "Jar", Type: WalletType("Jar")},
			wantErr: true,
			errMsg:  "unknown wallet type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wallet.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWallet_Settle(t *testing.T) {
	stock := Wallet{
		Type:            WalletTypeStock,
		Cash:            decimal.RequireFromString("12.5"),
		InvestmentValue: decimal.RequireFromString("7.5"),
		GrossBalance:    decimal.RequireFromString("999"),
	}
	stock.Settle()
	assert.True(t, decimal.NewFromInt(20).Equal(stock.GrossBalance))

	// Non-stock wallets keep whatever gross balance they carry
	bank := Wallet{Type: WalletTypeBank, GrossBalance: decimal.NewFromInt(3)}
	bank.Settle()
	assert.True(t, decimal.NewFromInt(3).Equal(bank.GrossBalance))
}

func TestWallet_GrossDrifted(t *testing.T) {
	stock := Wallet{Type: WalletTypeStock, Cash: decimal.NewFromInt(4), InvestmentValue: decimal.NewFromInt(6), GrossBalance: decimal.NewFromInt(9)}
	assert.True(t, stock.GrossDrifted())

	stock.Settle()
	assert.False(t, stock.GrossDrifted())

	bank := Wallet{Type: WalletTypeBank, Cash: decimal.NewFromInt(4), GrossBalance: decimal.NewFromInt(9)}
	assert.False(t, bank.GrossDrifted())
}
