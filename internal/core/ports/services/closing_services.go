package services

import (
	"context"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// ClosingSvcFacade manages end-of-day closing records.
type ClosingSvcFacade interface {
	// Create records the actor's closing for a day. At most one closing exists
	// per (company, user, date); a second attempt fails with apperrors.ErrDuplicate.
	Create(ctx context.Context, actor domain.Actor, req dto.CreateClosingRequest) (*domain.DailyClosing, error)

	// List returns the company's closings. Tellers see their own only.
	List(ctx context.Context, actor domain.Actor, params dto.ListClosingsParams) ([]domain.DailyClosing, error)

	// Get returns one closing.
	Get(ctx context.Context, actor domain.Actor, closingID string) (*domain.DailyClosing, error)

	// Update edits a closing. Only the original closer or an admin-or-above may update.
	Update(ctx context.Context, actor domain.Actor, closingID string, req dto.UpdateClosingRequest) (*domain.DailyClosing, error)
}
