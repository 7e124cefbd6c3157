package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// ReportingSvcFacade serves the read-only dashboard aggregates. Owner only.
type ReportingSvcFacade interface {
	Dashboard(ctx context.Context, actor domain.Actor) (*dto.DashboardResponse, error)
}
