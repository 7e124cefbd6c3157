package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
	"github.com/obeng-labs/agencyledger/internal/events"
	"github.com/obeng-labs/agencyledger/internal/handlers"
	"github.com/obeng-labs/agencyledger/internal/platform/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateBankDeposit(ctx context.Context, actor domain.Actor, req dto.CreateBankDepositRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateMobileMoney(ctx context.Context, actor domain.Actor, req dto.CreateMobileMoneyRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateCash(ctx context.Context, actor domain.Actor, req dto.CreateCashRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*dto.TransactionDetailResponse, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionDetailResponse), args.Error(1)
}
func (m *MockTransactionService) ListPendingApprovals(ctx context.Context, actor domain.Actor) ([]domain.Transaction, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) Decide(ctx context.Context, actor domain.Actor, transactionID string, req dto.DecisionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) Reverse(ctx context.Context, actor domain.Actor, transactionID string, req dto.ReverseRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actor, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) ResolveActor(ctx context.Context, userID, companyID string) (domain.Actor, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).(domain.Actor), args.Error(1)
}
func (m *MockCompanyService) GetSettings(ctx context.Context, companyID string) (*domain.CompanySettings, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanySettings), args.Error(1)
}
func (m *MockCompanyService) HasCapability(ctx context.Context, companyID string, capability domain.Capability) (bool, error) {
	args := m.Called(ctx, companyID, capability)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

// Unused facades get nil entries in the container; routes under test never
// touch them, and a nil-pointer panic would flag a routing mistake loudly.

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockCompanyService     *MockCompanyService
	jwtSecret              string
	companyID              string
	userID                 string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "agencyledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockCompanyService = new(MockCompanyService)

	container := &portssvc.ServiceContainer{
		Transaction: suite.mockTransactionService,
		Company:     suite.mockCompanyService,
	}

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, container, events.NewBroadcaster(nil))
}

func (suite *TransactionHandlerTestSuite) expectActor(role domain.Role) domain.Actor {
	actor := domain.Actor{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
	}
	suite.mockCompanyService.On("ResolveActor", mock.Anything, suite.userID, suite.companyID).
		Return(actor, nil).Once()
	return actor
}

func (suite *TransactionHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	url := fmt.Sprintf("/api/v1/companies/%s%s", suite.companyID, path)
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateBankDeposit_Success() {
	actor := suite.expectActor(domain.RoleTeller)

	reqBody := dto.CreateBankDepositRequest{
		Amount:        decimal.NewFromInt(500),
		Description:   "Rent collection",
		BankName:      "GCB",
		AccountNumber: "0011223344",
		AccountName:   "Kofi Ventures",
		DepositorName: "Ama Serwaa",
	}

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN-1700000000000-123",
		CompanyID:     suite.companyID,
		InitiatedBy:   suite.userID,
		Type:          domain.TypeDeposit,
		Channel:       domain.ChannelBank,
		Status:        domain.StatusCompleted,
		Amount:        decimal.NewFromInt(500),
		Fee:           decimal.NewFromInt(5),
		NetAmount:     decimal.NewFromInt(495),
		Currency:      "GHS",
		Timestamps:    domain.Timestamps{CreatedAt: time.Now()},
	}

	suite.mockTransactionService.On("CreateBankDeposit", mock.Anything, actor,
		mock.MatchedBy(func(r dto.CreateBankDepositRequest) bool {
			return r.BankName == "GCB" && r.Amount.Equal(decimal.NewFromInt(500))
		}),
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/transactions/bank-deposit", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.Reference, resp.Reference)
	suite.True(resp.NetAmount.Equal(decimal.NewFromInt(495)))
	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockCompanyService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateBankDeposit_MissingFields() {
	suite.expectActor(domain.RoleTeller)

	w := suite.do(http.MethodPost, "/transactions/bank-deposit", gin.H{"amount": 500})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateBankDeposit")
}

func (suite *TransactionHandlerTestSuite) TestCreateMobileMoney_PlanRestricted() {
	actor := suite.expectActor(domain.RoleTeller)

	suite.mockTransactionService.On("CreateMobileMoney", mock.Anything, actor, mock.Anything).
		Return(nil, apperrors.ErrPlanRestricted).Once()

	w := suite.do(http.MethodPost, "/transactions/mobile-money", dto.CreateMobileMoneyRequest{
		Type:         "deposit",
		Amount:       decimal.NewFromInt(50),
		Network:      "mtn",
		ServiceType:  "cash_in",
		SenderNumber: "0241234567",
	})

	suite.Equal(http.StatusPaymentRequired, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("PLAN_RESTRICTED", resp["code"])
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	actor := suite.expectActor(domain.RoleManager)

	next := "b2s="
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), Reference: "TXN-1700000000000-201"},
		},
		NextToken: &next,
	}
	suite.mockTransactionService.On("ListTransactions", mock.Anything, actor,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 10 }),
	).Return(expected, nil).Once()

	w := suite.do(http.MethodGet, "/transactions?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *TransactionHandlerTestSuite) TestDecide_Conflict() {
	actor := suite.expectActor(domain.RoleManager)
	txID := uuid.NewString()

	suite.mockTransactionService.On("Decide", mock.Anything, actor, txID,
		dto.DecisionRequest{Action: "approve"},
	).Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPost, "/transactions/"+txID+"/decision", dto.DecisionRequest{Action: "approve"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestReverse_NotFound() {
	actor := suite.expectActor(domain.RoleAdmin)
	txID := uuid.NewString()

	suite.mockTransactionService.On("Reverse", mock.Anything, actor, txID,
		dto.ReverseRequest{Reason: "duplicate entry"},
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPost, "/transactions/"+txID+"/reverse", dto.ReverseRequest{Reason: "duplicate entry"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	url := fmt.Sprintf("/api/v1/companies/%s/transactions", suite.companyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCompanyService.AssertNotCalled(suite.T(), "ResolveActor")
}

func (suite *TransactionHandlerTestSuite) TestForeignCompany_NotFound() {
	suite.mockCompanyService.On("ResolveActor", mock.Anything, suite.userID, suite.companyID).
		Return(domain.Actor{}, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/transactions", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ListTransactions")
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
