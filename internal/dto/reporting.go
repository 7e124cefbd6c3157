package dto

import "github.com/shopspring/decimal"

// AgentVolumeResponse is one row of the top-agents ranking.
type AgentVolumeResponse struct {
	UserID           string          `json:"userID"`
	TransactionCount int             `json:"transactionCount"`
	TotalVolume      decimal.Decimal `json:"totalVolume"`
}

// DashboardResponse is the owner dashboard summary.
type DashboardResponse struct {
	TotalTransactionsToday int                   `json:"totalTransactionsToday"`
	DepositsToday          decimal.Decimal       `json:"depositsToday"`
	WithdrawalsToday       decimal.Decimal       `json:"withdrawalsToday"`
	FeesToday              decimal.Decimal       `json:"feesToday"`
	PendingApprovals       int                   `json:"pendingApprovals"`
	ByChannel              map[string]int        `json:"byChannel"`
	ByStatus               map[string]int        `json:"byStatus"`
	RecentTransactions     []TransactionResponse `json:"recentTransactions"`
	TopAgents              []AgentVolumeResponse `json:"topAgents"`
}
