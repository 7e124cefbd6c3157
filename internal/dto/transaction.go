package dto

import (
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankDepositRequest creates a bank-channel deposit with its detail record.
type CreateBankDepositRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerID    *string         `json:"customerID,omitempty"`
	Description   string          `json:"description,omitempty"`
	BankName      string          `json:"bankName" binding:"required"`
	AccountNumber string          `json:"accountNumber" binding:"required"`
	AccountName   string          `json:"accountName" binding:"required"`
	DepositorName string          `json:"depositorName" binding:"required"`
	SlipNumber    string          `json:"slipNumber,omitempty"`
}

// CreateMobileMoneyRequest creates a mobile-money deposit or withdrawal.
type CreateMobileMoneyRequest struct {
	Type           string          `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	CustomerID     *string         `json:"customerID,omitempty"`
	Description    string          `json:"description,omitempty"`
	Network        string          `json:"network" binding:"required,oneof=mtn vodafone airteltigo"`
	ServiceType    string          `json:"serviceType" binding:"required,oneof=send_money receive_money cash_in cash_out"`
	SenderNumber   string          `json:"senderNumber" binding:"required"`
	ReceiverNumber string          `json:"receiverNumber,omitempty"`
	MoMoReference  string          `json:"momoReference,omitempty"`
}

// CreateCashRequest creates a cash deposit or withdrawal with denomination counts.
type CreateCashRequest struct {
	Type        string          `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CustomerID  *string         `json:"customerID,omitempty"`
	Description string          `json:"description,omitempty"`
	D200        int             `json:"d200" binding:"gte=0"`
	D100        int             `json:"d100" binding:"gte=0"`
	D50         int             `json:"d50" binding:"gte=0"`
	D20         int             `json:"d20" binding:"gte=0"`
	D10         int             `json:"d10" binding:"gte=0"`
	D5          int             `json:"d5" binding:"gte=0"`
	D2          int             `json:"d2" binding:"gte=0"`
	D1          int             `json:"d1" binding:"gte=0"`
}

// ListTransactionsParams filters and pages a transaction listing.
type ListTransactionsParams struct {
	Status     string `form:"status"`
	Type       string `form:"type"`
	Channel    string `form:"channel"`
	CustomerID string `form:"customer"`
	BranchID   string `form:"branch"`
	DateFrom   string `form:"date_from"` // YYYY-MM-DD
	DateTo     string `form:"date_to"`   // YYYY-MM-DD
	Search     string `form:"search"`
	Limit      int    `form:"limit"`
	NextToken  string `form:"next_token"`
}

// DecisionRequest approves or rejects a pending transaction.
type DecisionRequest struct {
	Action          string `json:"action" binding:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ReverseRequest reverses a completed transaction.
type ReverseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionResponse is the full transaction snapshot returned to clients and
// carried in transaction_update events.
type TransactionResponse struct {
	TransactionID         string          `json:"transactionID"`
	Reference             string          `json:"reference"`
	BranchID              *string         `json:"branchID,omitempty"`
	CustomerID            *string         `json:"customerID,omitempty"`
	InitiatedBy           string          `json:"initiatedBy"`
	Type                  string          `json:"type"`
	Channel               string          `json:"channel"`
	Status                string          `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	Fee                   decimal.Decimal `json:"fee"`
	NetAmount             decimal.Decimal `json:"netAmount"`
	Currency              string          `json:"currency"`
	Description           string          `json:"description,omitempty"`
	RequiresApproval      bool            `json:"requiresApproval"`
	ApprovedBy            *string         `json:"approvedBy,omitempty"`
	ApprovedAt            *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason       string          `json:"rejectionReason,omitempty"`
	ReversedTransactionID *string         `json:"reversedTransactionID,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ListTransactionsResponse is one page of transactions plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TransactionDetailResponse pairs a transaction with its channel detail record.
type TransactionDetailResponse struct {
	Transaction TransactionResponse       `json:"transaction"`
	Bank        *domain.BankDepositDetail `json:"bankDetail,omitempty"`
	MoMo        *domain.MobileMoneyDetail `json:"momoDetail,omitempty"`
	Cash        *CashDetailResponse       `json:"cashDetail,omitempty"`
}

// CashDetailResponse adds the derived denomination total to the raw counts.
type CashDetailResponse struct {
	domain.CashDetail
	DenominationTotal decimal.Decimal `json:"denominationTotal"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         tx.TransactionID,
		Reference:             tx.Reference,
		BranchID:              tx.BranchID,
		CustomerID:            tx.CustomerID,
		InitiatedBy:           tx.InitiatedBy,
		Type:                  string(tx.Type),
		Channel:               string(tx.Channel),
		Status:                string(tx.Status),
		Amount:                tx.Amount,
		Fee:                   tx.Fee,
		NetAmount:             tx.NetAmount,
		Currency:              tx.Currency,
		Description:           tx.Description,
		RequiresApproval:      tx.RequiresApproval,
		ApprovedBy:            tx.ApprovedBy,
		ApprovedAt:            tx.ApprovedAt,
		RejectionReason:       tx.RejectionReason,
		ReversedTransactionID: tx.ReversedTransactionID,
		CreatedAt:             tx.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}

// ToTransactionDetailResponse pairs a transaction snapshot with whichever
// channel detail is present.
func ToTransactionDetailResponse(tx *domain.Transaction, detail *domain.ChannelDetail) TransactionDetailResponse {
	resp := TransactionDetailResponse{Transaction: ToTransactionResponse(tx)}
	if detail == nil {
		return resp
	}
	resp.Bank = detail.Bank
	resp.MoMo = detail.MoMo
	if detail.Cash != nil {
		resp.Cash = &CashDetailResponse{
			CashDetail:        *detail.Cash,
			DenominationTotal: detail.Cash.DenominationTotal(),
		}
	}
	return resp
}
