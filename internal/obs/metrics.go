// Package obs holds the Prometheus instrumentation for the ledger.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsCreated counts ledger creations by channel and type.
	TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencyledger_transactions_created_total",
		Help: "Number of transactions created.",
	}, []string{"channel", "type"})

	// ApprovalDecisions counts approve/reject outcomes.
	ApprovalDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencyledger_approval_decisions_total",
		Help: "Number of approval decisions taken on pending transactions.",
	}, []string{"decision"})

	// Reversals counts completed reversals.
	Reversals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agencyledger_reversals_total",
		Help: "Number of transactions reversed.",
	})

	// BalanceAdjustments counts float adjustments by provider and operation.
	BalanceAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencyledger_balance_adjustments_total",
		Help: "Number of provider balance adjustments applied.",
	}, []string{"provider", "operation"})

	// EventsEmitted counts lifecycle events published to the broadcaster.
	EventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencyledger_events_emitted_total",
		Help: "Number of lifecycle events emitted after committed state changes.",
	}, []string{"type"})

	// HTTPRequests counts handled requests by method, path template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencyledger_http_requests_total",
		Help: "Number of HTTP requests handled.",
	}, []string{"method", "path", "status"})
)
