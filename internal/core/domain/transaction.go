package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the financial operation a ledger entry records.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
	TypeFee        TransactionType = "fee"
	TypeCommission TransactionType = "commission"
	TypeReversal   TransactionType = "reversal"
)

// Channel identifies how the money physically moved.
type Channel string

const (
	ChannelBank        Channel = "bank"
	ChannelMobileMoney Channel = "mobile_money"
	ChannelCash        Channel = "cash"
)

// TransactionStatus is the state of a transaction in the approval workflow.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusApproved  TransactionStatus = "approved"
	StatusCompleted TransactionStatus = "completed"
	StatusRejected  TransactionStatus = "rejected"
	StatusReversed  TransactionStatus = "reversed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is the central ledger entry. Every financial operation creates
// exactly one of these; channel-specific details live in a 1:1 detail record.
type Transaction struct {
	TransactionID string  `json:"transactionID"` // Primary Key (UUID)
	Reference     string  `json:"reference"`     // Unique, immutable, TXN-<ms>-<3digit>
	CompanyID     string  `json:"companyID"`     // Tenant, immutable after creation
	BranchID      *string `json:"branchID,omitempty"`
	CustomerID    *string `json:"customerID,omitempty"`
	InitiatedBy   string  `json:"initiatedBy"` // UserID of the creating actor, immutable

	Type    TransactionType   `json:"type"`
	Channel Channel           `json:"channel"`
	Status  TransactionStatus `json:"status"`

	Amount    decimal.Decimal `json:"amount"`    // Positive
	Fee       decimal.Decimal `json:"fee"`       // Computed at creation, non-negative
	NetAmount decimal.Decimal `json:"netAmount"` // Always Amount - Fee
	Currency  string          `json:"currency"`

	Description   string `json:"description"`
	InternalNotes string `json:"internalNotes"` // Visible only to company staff

	RequiresApproval bool       `json:"requiresApproval"`
	ApprovedBy       *string    `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	RejectionReason  string     `json:"rejectionReason,omitempty"`

	// ReversedTransactionID points to the original transaction when this
	// record is itself a reversal.
	ReversedTransactionID *string `json:"reversedTransactionID,omitempty"`

	Timestamps
}

// RecomputeNet re-derives NetAmount from Amount and Fee. Called whenever either
// changes before persistence so the invariant net = amount - fee always holds.
func (t *Transaction) RecomputeNet() {
	t.NetAmount = t.Amount.Sub(t.Fee)
}

// IsTerminal reports whether no further workflow transition is legal for this record.
// Rejected and reversed records never change again; a reversal is always a new record.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusRejected || t.Status == StatusReversed || t.Status == StatusFailed
}

// MoMoNetwork is a mobile money network operator.
type MoMoNetwork string

const (
	NetworkMTN        MoMoNetwork = "mtn"
	NetworkVodafone   MoMoNetwork = "vodafone"
	NetworkAirtelTigo MoMoNetwork = "airteltigo"
)

// MoMoServiceType is the kind of mobile money service performed.
type MoMoServiceType string

const (
	ServiceSendMoney    MoMoServiceType = "send_money"
	ServiceReceiveMoney MoMoServiceType = "receive_money"
	ServiceCashIn       MoMoServiceType = "cash_in"
	ServiceCashOut      MoMoServiceType = "cash_out"
)

// BankDepositDetail extends a bank-channel transaction. Created atomically with
// its transaction and immutable afterwards.
type BankDepositDetail struct {
	TransactionID string `json:"transactionID"` // Unique FK -> Transaction
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	DepositorName string `json:"depositorName"`
	SlipNumber    string `json:"slipNumber,omitempty"`
}

// MobileMoneyDetail extends a mobile-money-channel transaction.
type MobileMoneyDetail struct {
	TransactionID  string          `json:"transactionID"` // Unique FK -> Transaction
	Network        MoMoNetwork     `json:"network"`
	ServiceType    MoMoServiceType `json:"serviceType"`
	SenderNumber   string          `json:"senderNumber"`
	ReceiverNumber string          `json:"receiverNumber,omitempty"`
	MoMoReference  string          `json:"momoReference,omitempty"`
}

// CashDetail extends a cash-channel transaction with the counted denominations.
type CashDetail struct {
	TransactionID string `json:"transactionID"` // Unique FK -> Transaction
	D200          int    `json:"d200"`
	D100          int    `json:"d100"`
	D50           int    `json:"d50"`
	D20           int    `json:"d20"`
	D10           int    `json:"d10"`
	D5            int    `json:"d5"`
	D2            int    `json:"d2"`
	D1            int    `json:"d1"`
}

// DenominationTotal is the cash value implied by the denomination counts.
func (c CashDetail) DenominationTotal() decimal.Decimal {
	total := c.D200*200 + c.D100*100 + c.D50*50 + c.D20*20 +
		c.D10*10 + c.D5*5 + c.D2*2 + c.D1*1
	return decimal.NewFromInt(int64(total))
}

// ChannelDetail carries whichever 1:1 detail record accompanies a transaction.
// Exactly one of the fields is set, matching the transaction's channel.
type ChannelDetail struct {
	Bank *BankDepositDetail
	MoMo *MobileMoneyDetail
	Cash *CashDetail
}
