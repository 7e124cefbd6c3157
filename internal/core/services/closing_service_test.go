package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/core/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
)

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

var _ portsrepo.ClosingRepositoryFacade = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) SaveClosing(ctx context.Context, closing domain.DailyClosing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockClosingRepository) FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.DailyClosing, error) {
	args := m.Called(ctx, companyID, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) ListClosings(ctx context.Context, companyID string, closedBy *string, date *time.Time) ([]domain.DailyClosing, error) {
	args := m.Called(ctx, companyID, closedBy, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) UpdateClosing(ctx context.Context, closing domain.DailyClosing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ClosingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo *MockClosingRepository
	service         portssvc.ClosingSvcFacade
	companyID       string
	teller          domain.Actor
	admin           domain.Actor
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.service = services.NewClosingService(suite.mockClosingRepo)

	suite.companyID = uuid.NewString()
	suite.teller = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleTeller}
	suite.admin = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleAdmin}
}

func (suite *ClosingServiceTestSuite) closingRow(closedBy string) *domain.DailyClosing {
	closing := &domain.DailyClosing{
		ClosingID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		ClosedBy:        closedBy,
		Date:            time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		PhysicalCash:    decimal.NewFromInt(3000),
		MTNECash:        decimal.NewFromInt(1000),
		VodafoneECash:   decimal.NewFromInt(500),
		AirtelTigoECash: decimal.NewFromInt(250),
	}
	closing.RecomputeTotals()
	return closing
}

// --- Test Cases ---

func (suite *ClosingServiceTestSuite) TestCreate_ComputesECashTotal() {
	ctx := context.Background()

	var saved domain.DailyClosing
	suite.mockClosingRepo.On("SaveClosing", ctx, mock.AnythingOfType("domain.DailyClosing")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.DailyClosing)
		}).Return(nil).Once()

	closing, err := suite.service.Create(ctx, suite.teller, dto.CreateClosingRequest{
		Date:            "2026-08-29",
		PhysicalCash:    decimal.NewFromInt(3000),
		MTNECash:        decimal.NewFromInt(1000),
		VodafoneECash:   decimal.NewFromInt(500),
		AirtelTigoECash: decimal.NewFromInt(250),
	})

	suite.Require().NoError(err)
	suite.True(closing.TotalECash.Equal(decimal.NewFromInt(1750)))
	suite.Equal(suite.teller.UserID, closing.ClosedBy)
	suite.True(saved.TotalECash.Equal(decimal.NewFromInt(1750)))
}

func (suite *ClosingServiceTestSuite) TestCreate_DuplicateDay() {
	ctx := context.Background()

	suite.mockClosingRepo.On("SaveClosing", ctx, mock.AnythingOfType("domain.DailyClosing")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Create(ctx, suite.teller, dto.CreateClosingRequest{Date: "2026-08-29"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClosingServiceTestSuite) TestCreate_BadDate() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, suite.teller, dto.CreateClosingRequest{Date: "29/08/2026"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "SaveClosing", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestList_TellerScopedToOwn() {
	ctx := context.Background()

	suite.mockClosingRepo.On("ListClosings", ctx, suite.companyID, mock.MatchedBy(func(closedBy *string) bool {
		return closedBy != nil && *closedBy == suite.teller.UserID
	}), (*time.Time)(nil)).Return([]domain.DailyClosing{}, nil).Once()

	_, err := suite.service.List(ctx, suite.teller, dto.ListClosingsParams{})

	suite.Require().NoError(err)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestGet_TellerCannotSeeOthers() {
	ctx := context.Background()
	other := suite.closingRow(suite.admin.UserID)

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, other.ClosingID).Return(other, nil).Once()

	_, err := suite.service.Get(ctx, suite.teller, other.ClosingID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ClosingServiceTestSuite) TestUpdate_ByCloserRecomputesTotal() {
	ctx := context.Background()
	closing := suite.closingRow(suite.teller.UserID)

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, closing.ClosingID).Return(closing, nil).Once()

	var updated domain.DailyClosing
	suite.mockClosingRepo.On("UpdateClosing", ctx, mock.AnythingOfType("domain.DailyClosing")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.DailyClosing)
		}).Return(nil).Once()

	newMTN := decimal.NewFromInt(2000)
	result, err := suite.service.Update(ctx, suite.teller, closing.ClosingID, dto.UpdateClosingRequest{MTNECash: &newMTN})

	suite.Require().NoError(err)
	suite.True(result.TotalECash.Equal(decimal.NewFromInt(2750)))
	suite.True(updated.TotalECash.Equal(decimal.NewFromInt(2750)))
}

func (suite *ClosingServiceTestSuite) TestUpdate_OtherTellerForbidden() {
	ctx := context.Background()
	closing := suite.closingRow(suite.admin.UserID)
	otherTeller := domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleTeller}

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, closing.ClosingID).Return(closing, nil).Once()

	_, err := suite.service.Update(ctx, otherTeller, closing.ClosingID, dto.UpdateClosingRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "UpdateClosing", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestUpdate_AdminMayEditOthers() {
	ctx := context.Background()
	closing := suite.closingRow(suite.teller.UserID)

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, closing.ClosingID).Return(closing, nil).Once()
	suite.mockClosingRepo.On("UpdateClosing", ctx, mock.AnythingOfType("domain.DailyClosing")).Return(nil).Once()

	notes := "Recount verified by supervisor"
	result, err := suite.service.Update(ctx, suite.admin, closing.ClosingID, dto.UpdateClosingRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.Equal(notes, result.Notes)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
