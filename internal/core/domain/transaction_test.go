package domain_test

import (
	"testing"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_RecomputeNet(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		fee    string
		want   string
	}{
		{name: "percentage fee", amount: "500", fee: "5", want: "495"},
		{name: "zero fee", amount: "200", fee: "0", want: "200"},
		{name: "fractional fee", amount: "123.45", fee: "1.23", want: "122.22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := domain.Transaction{
				Amount: decimal.RequireFromString(tt.amount),
				Fee:    decimal.RequireFromString(tt.fee),
			}
			tx.RecomputeNet()
			assert.True(t, tx.NetAmount.Equal(decimal.RequireFromString(tt.want)),
				"net = %s, want %s", tx.NetAmount, tt.want)
		})
	}
}

func TestTransaction_IsTerminal(t *testing.T) {
	tests := []struct {
		status domain.TransactionStatus
		want   bool
	}{
		{domain.StatusPending, false},
		{domain.StatusCompleted, false},
		{domain.StatusRejected, true},
		{domain.StatusReversed, true},
		{domain.StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			tx := domain.Transaction{Status: tt.status}
			assert.Equal(t, tt.want, tx.IsTerminal())
		})
	}
}

func TestCashDetail_DenominationTotal(t *testing.T) {
	detail := domain.CashDetail{
		D200: 1, // 200
		D100: 2, // 200
		D50:  3, // 150
		D20:  1, // 20
		D10:  2, // 20
		D5:   1, // 5
		D2:   2, // 4
		D1:   3, // 3
	}
	assert.True(t, detail.DenominationTotal().Equal(decimal.NewFromInt(602)))

	empty := domain.CashDetail{}
	assert.True(t, empty.DenominationTotal().IsZero())
}
