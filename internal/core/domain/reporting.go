package domain

import "github.com/shopspring/decimal"

// DailyTotals aggregates one company's activity for a single day.
type DailyTotals struct {
	TransactionCount int
	DepositsTotal    decimal.Decimal
	WithdrawalsTotal decimal.Decimal
	FeesTotal        decimal.Decimal
	ByChannel        map[Channel]int
	ByStatus         map[TransactionStatus]int
}

// AgentVolume is one agent's completed transaction volume over a period.
type AgentVolume struct {
	UserID           string
	TransactionCount int
	TotalVolume      decimal.Decimal
}
