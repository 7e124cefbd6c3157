package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

const closingDateLayout = "2006-01-02"

// closingService manages end-of-day closing records.
type closingService struct {
	BaseService
	closingRepo portsrepo.ClosingRepositoryFacade
}

// NewClosingService creates a new closing service.
func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade) portssvc.ClosingSvcFacade {
	return &closingService{closingRepo: closingRepo}
}

func (s *closingService) Create(ctx context.Context, actor domain.Actor, req dto.CreateClosingRequest) (*domain.DailyClosing, error) {
	date, err := time.Parse(closingDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	closing := domain.DailyClosing{
		ClosingID:       uuid.NewString(),
		CompanyID:       actor.CompanyID,
		BranchID:        actor.BranchID,
		ClosedBy:        actor.UserID,
		Date:            date,
		PhysicalCash:    req.PhysicalCash,
		MTNECash:        req.MTNECash,
		VodafoneECash:   req.VodafoneECash,
		AirtelTigoECash: req.AirtelTigoECash,
		Overage:         req.Overage,
		Shortage:        req.Shortage,
		Notes:           req.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	closing.RecomputeTotals()

	if err := s.closingRepo.SaveClosing(ctx, closing); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a closing already exists for %s", apperrors.ErrDuplicate, req.Date)
		}
		s.LogError(ctx, err, "failed to save closing", "closing_id", closing.ClosingID)
		return nil, fmt.Errorf("failed to save closing: %w", err)
	}

	s.LogInfo(ctx, "daily closing recorded", "closing_id", closing.ClosingID, "date", req.Date, "closed_by", actor.UserID)
	return &closing, nil
}

func (s *closingService) List(ctx context.Context, actor domain.Actor, params dto.ListClosingsParams) ([]domain.DailyClosing, error) {
	var closedBy *string
	if !actor.Role.AtLeast(domain.RoleManager) {
		closedBy = &actor.UserID
	}

	var date *time.Time
	if params.Date != "" {
		parsed, err := time.Parse(closingDateLayout, params.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		date = &parsed
	}

	closings, err := s.closingRepo.ListClosings(ctx, actor.CompanyID, closedBy, date)
	if err != nil {
		s.LogError(ctx, err, "failed to list closings")
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	return closings, nil
}

func (s *closingService) Get(ctx context.Context, actor domain.Actor, closingID string) (*domain.DailyClosing, error) {
	closing, err := s.findClosing(ctx, actor.CompanyID, closingID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.AtLeast(domain.RoleManager) && closing.ClosedBy != actor.UserID {
		return nil, apperrors.ErrNotFound
	}
	return closing, nil
}

// Update edits a closing. Only the original closer or an admin-or-above may
// update, and the derived e-cash total is recomputed whenever a float changes.
func (s *closingService) Update(ctx context.Context, actor domain.Actor, closingID string, req dto.UpdateClosingRequest) (*domain.DailyClosing, error) {
	closing, err := s.findClosing(ctx, actor.CompanyID, closingID)
	if err != nil {
		return nil, err
	}
	if closing.ClosedBy != actor.UserID && !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: only the original closer or an admin may update a closing", apperrors.ErrForbidden)
	}

	if req.PhysicalCash != nil {
		closing.PhysicalCash = *req.PhysicalCash
	}
	if req.MTNECash != nil {
		closing.MTNECash = *req.MTNECash
	}
	if req.VodafoneECash != nil {
		closing.VodafoneECash = *req.VodafoneECash
	}
	if req.AirtelTigoECash != nil {
		closing.AirtelTigoECash = *req.AirtelTigoECash
	}
	if req.Overage != nil {
		closing.Overage = *req.Overage
	}
	if req.Shortage != nil {
		closing.Shortage = *req.Shortage
	}
	if req.Notes != nil {
		closing.Notes = *req.Notes
	}
	closing.RecomputeTotals()
	closing.UpdatedAt = time.Now().UTC()

	if err := s.closingRepo.UpdateClosing(ctx, *closing); err != nil {
		s.LogError(ctx, err, "failed to update closing", "closing_id", closingID)
		return nil, fmt.Errorf("failed to update closing: %w", err)
	}

	s.LogInfo(ctx, "daily closing updated", "closing_id", closingID, "updated_by", actor.UserID)
	return closing, nil
}

func (s *closingService) findClosing(ctx context.Context, companyID, closingID string) (*domain.DailyClosing, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, companyID, closingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to find closing", "closing_id", closingID)
		return nil, fmt.Errorf("failed to find closing: %w", err)
	}
	return closing, nil
}
