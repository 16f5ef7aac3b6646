package domain_test

import (
	"testing"
	"time"

	"github.com/dompetku-app/dompetku_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string { return &s }

func TestTransaction_BalanceChanges(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        map[string]int64
	}{
		{
			name: "income credits the source wallet",
			transaction: domain.Transaction{
				WalletID: "w1",
				Kind:     domain.KindIncome,
				Amount:   5000,
			},
			want: map[string]int64{"w1": 5000},
		},
		{
			name: "expense debits the source wallet",
			transaction: domain.Transaction{
				WalletID: "w1",
				Kind:     domain.KindExpense,
				Amount:   5000,
			},
			want: map[string]int64{"w1": -5000},
		},
		{
			name: "transfer debits source and credits destination",
			transaction: domain.Transaction{
				WalletID:   "w1",
				ToWalletID: stringPtr("w2"),
				Kind:       domain.KindTransfer,
				Amount:     2500,
			},
			want: map[string]int64{"w1": -2500, "w2": 2500},
		},
		{
			name: "transfer without destination only debits source",
			transaction: domain.Transaction{
				WalletID: "w1",
				Kind:     domain.KindTransfer,
				Amount:   2500,
			},
			want: map[string]int64{"w1": -2500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.BalanceChanges())
		})
	}
}

func TestTransaction_InverseBalanceChanges(t *testing.T) {
	txn := domain.Transaction{
		WalletID:   "w1",
		ToWalletID: stringPtr("w2"),
		Kind:       domain.KindTransfer,
		Amount:     1200,
	}

	inverse := txn.InverseBalanceChanges()
	assert.Equal(t, map[string]int64{"w1": 1200, "w2": -1200}, inverse)

	// Applying changes then inverse must net to zero per wallet.
	net := txn.BalanceChanges()
	for walletID, delta := range inverse {
		net[walletID] += delta
	}
	for walletID, delta := range net {
		assert.Zerof(t, delta, "wallet %s must net to zero", walletID)
	}
}

func TestBudget_DateRange(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	budget := domain.Budget{StartAt: start, EndAt: end}

	assert.True(t, budget.ContainsDate(start))
	assert.True(t, budget.ContainsDate(end))
	assert.True(t, budget.ContainsDate(start.AddDate(0, 0, 10)))
	assert.False(t, budget.ContainsDate(start.AddDate(0, 0, -1)))
	assert.False(t, budget.ContainsDate(end.AddDate(0, 0, 1)))

	// Inclusive-inclusive overlap on both boundaries.
	assert.True(t, budget.Overlaps(end, end.AddDate(0, 1, 0)))
	assert.True(t, budget.Overlaps(start.AddDate(0, -1, 0), start))
	assert.False(t, budget.Overlaps(end.AddDate(0, 0, 1), end.AddDate(0, 1, 0)))
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, domain.KindIncome.Valid())
	assert.True(t, domain.KindExpense.Valid())
	assert.True(t, domain.KindTransfer.Valid())
	assert.False(t, domain.TransactionKind("refund").Valid())
	assert.False(t, domain.TransactionKind("").Valid())
}
