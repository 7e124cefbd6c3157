package services

import (
	"context"
	"fmt"
	"time"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

const (
	recentTransactionsLimit = 10
	topAgentsLimit          = 5
	topAgentsWindow         = 30 * 24 * time.Hour
)

// reportingService serves the owner dashboard from read-only aggregates.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	txRepo        portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, txRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, txRepo: txRepo}
}

func (s *reportingService) Dashboard(ctx context.Context, actor domain.Actor) (*dto.DashboardResponse, error) {
	if !actor.Role.AtLeast(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: owner role required", apperrors.ErrForbidden)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	totals, err := s.reportingRepo.GetDailyTotals(ctx, actor.CompanyID, today)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate daily totals")
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}

	pending, err := s.reportingRepo.CountPendingApprovals(ctx, actor.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "failed to count pending approvals")
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}

	topAgents, err := s.reportingRepo.GetTopAgents(ctx, actor.CompanyID, today.Add(-topAgentsWindow), topAgentsLimit)
	if err != nil {
		s.LogError(ctx, err, "failed to rank top agents")
		return nil, fmt.Errorf("failed to rank top agents: %w", err)
	}

	recent, _, err := s.txRepo.ListTransactions(ctx, actor.CompanyID, portsrepo.ListTransactionFilters{}, recentTransactionsLimit, nil)
	if err != nil {
		s.LogError(ctx, err, "failed to list recent transactions")
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	byChannel := make(map[string]int, len(totals.ByChannel))
	for channel, count := range totals.ByChannel {
		byChannel[string(channel)] = count
	}
	byStatus := make(map[string]int, len(totals.ByStatus))
	for status, count := range totals.ByStatus {
		byStatus[string(status)] = count
	}

	agents := make([]dto.AgentVolumeResponse, len(topAgents))
	for i, agent := range topAgents {
		agents[i] = dto.AgentVolumeResponse{
			UserID:           agent.UserID,
			TransactionCount: agent.TransactionCount,
			TotalVolume:      agent.TotalVolume,
		}
	}

	return &dto.DashboardResponse{
		TotalTransactionsToday: totals.TransactionCount,
		DepositsToday:          totals.DepositsTotal,
		WithdrawalsToday:       totals.WithdrawalsTotal,
		FeesToday:              totals.FeesTotal,
		PendingApprovals:       pending,
		ByChannel:              byChannel,
		ByStatus:               byStatus,
		RecentTransactions:     dto.ToTransactionResponses(recent),
		TopAgents:              agents,
	}, nil
}
