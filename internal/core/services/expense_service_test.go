package services_test

import (
	"context"
	"testing"

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

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, companyID, expenseID string) (*domain.ExpenseRequest, error) {
	args := m.Called(ctx, companyID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseRequest), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, companyID string, requestedBy *string) ([]domain.ExpenseRequest, error) {
	args := m.Called(ctx, companyID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRequest), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.ExpenseSvcFacade
	companyID       string
	teller          domain.Actor
	manager         domain.Actor
	admin           domain.Actor
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo)

	suite.companyID = uuid.NewString()
	suite.teller = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleTeller}
	suite.manager = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleManager}
	suite.admin = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID, Role: domain.RoleAdmin}
}

func (suite *ExpenseServiceTestSuite) pendingExpense(requestedBy string) domain.ExpenseRequest {
	return domain.ExpenseRequest{
		ExpenseID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		RequestedBy: requestedBy,
		Amount:      decimal.NewFromInt(150),
		Reason:      "Fuel for branch generator",
		Status:      domain.ExpensePending,
	}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()

	var saved domain.ExpenseRequest
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.ExpenseRequest")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ExpenseRequest)
		}).Return(nil).Once()

	expense, err := suite.service.Submit(ctx, suite.teller, dto.CreateExpenseRequest{
		Amount: decimal.NewFromInt(150),
		Reason: "Fuel for branch generator",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePending, expense.Status)
	suite.Equal(suite.teller.UserID, expense.RequestedBy)
	suite.Equal(suite.companyID, saved.CompanyID)
}

func (suite *ExpenseServiceTestSuite) TestSubmit_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Submit(ctx, suite.teller, dto.CreateExpenseRequest{
		Amount: decimal.Zero,
		Reason: "nothing really",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestList_TellerScopedToOwn() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("ListExpenses", ctx, suite.companyID, mock.MatchedBy(func(requestedBy *string) bool {
		return requestedBy != nil && *requestedBy == suite.teller.UserID
	})).Return([]domain.ExpenseRequest{}, nil).Once()

	_, err := suite.service.List(ctx, suite.teller)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestList_ManagerSeesAll() {
	ctx := context.Background()

	suite.mockExpenseRepo.On("ListExpenses", ctx, suite.companyID, (*string)(nil)).Return([]domain.ExpenseRequest{}, nil).Once()

	_, err := suite.service.List(ctx, suite.manager)

	suite.Require().NoError(err)
}

func (suite *ExpenseServiceTestSuite) TestDecide_ApproveSuccess() {
	ctx := context.Background()
	pending := suite.pendingExpense(suite.teller.UserID)

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.companyID, pending.ExpenseID).Return(&pending, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.ExpenseRequest")).Return(nil).Once()

	expense, err := suite.service.Decide(ctx, suite.manager, pending.ExpenseID, dto.ExpenseDecisionRequest{Action: "approve"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, expense.Status)
	suite.Require().NotNil(expense.ApprovedBy)
	suite.Equal(suite.manager.UserID, *expense.ApprovedBy)
	suite.NotNil(expense.ApprovedAt)
}

// A manager may decide their own expense request; only transactions carry the
// initiator/approver separation.
func (suite *ExpenseServiceTestSuite) TestDecide_OwnExpenseAllowed() {
	ctx := context.Background()
	pending := suite.pendingExpense(suite.manager.UserID)

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.companyID, pending.ExpenseID).Return(&pending, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.ExpenseRequest")).Return(nil).Once()

	expense, err := suite.service.Decide(ctx, suite.manager, pending.ExpenseID, dto.ExpenseDecisionRequest{Action: "approve"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, expense.Status)
}

func (suite *ExpenseServiceTestSuite) TestDecide_TellerForbidden() {
	ctx := context.Background()

	_, err := suite.service.Decide(ctx, suite.teller, uuid.NewString(), dto.ExpenseDecisionRequest{Action: "approve"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestDecide_NonPendingConflict() {
	ctx := context.Background()
	approved := suite.pendingExpense(suite.teller.UserID)
	approved.Status = domain.ExpenseApproved

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.companyID, approved.ExpenseID).Return(&approved, nil).Once()

	_, err := suite.service.Decide(ctx, suite.manager, approved.ExpenseID, dto.ExpenseDecisionRequest{Action: "reject"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ExpenseServiceTestSuite) TestMarkPaid_Success() {
	ctx := context.Background()
	approved := suite.pendingExpense(suite.teller.UserID)
	approved.Status = domain.ExpenseApproved

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.companyID, approved.ExpenseID).Return(&approved, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.ExpenseRequest")).Return(nil).Once()

	expense, err := suite.service.MarkPaid(ctx, suite.admin, approved.ExpenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePaid, expense.Status)
}

func (suite *ExpenseServiceTestSuite) TestMarkPaid_PendingConflict() {
	ctx := context.Background()
	pending := suite.pendingExpense(suite.teller.UserID)

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, suite.companyID, pending.ExpenseID).Return(&pending, nil).Once()

	_, err := suite.service.MarkPaid(ctx, suite.admin, pending.ExpenseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ExpenseServiceTestSuite) TestMarkPaid_ManagerForbidden() {
	ctx := context.Background()

	_, err := suite.service.MarkPaid(ctx, suite.manager, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
