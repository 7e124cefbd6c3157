package repositories

import (
	"context"
	"time"

	"github.com/obeng-labs/agencyledger/internal/core/domain"
)

// ClosingRepositoryFacade defines persistence for daily closings.
type ClosingRepositoryFacade interface {
	// SaveClosing persists a new closing. Returns apperrors.ErrDuplicate when a
	// closing already exists for the same (company, user, date).
	SaveClosing(ctx context.Context, closing domain.DailyClosing) error

	// FindClosingByID retrieves one closing within a company.
	FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.DailyClosing, error)

	// ListClosings retrieves a company's closings, most recent date first.
	// closedBy and date narrow the listing when set.
	ListClosings(ctx context.Context, companyID string, closedBy *string, date *time.Time) ([]domain.DailyClosing, error)

	// UpdateClosing persists edits to an existing closing.
	UpdateClosing(ctx context.Context, closing domain.DailyClosing) error
}
