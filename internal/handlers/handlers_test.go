package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/dto"
	"github.com/SscSPs/currency_convertor/internal/handlers"
	"github.com/SscSPs/currency_convertor/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionFormService ---
type MockConversionFormService struct {
	mock.Mock
}

func (m *MockConversionFormService) State() domain.ConversionState {
	args := m.Called()
	return args.Get(0).(domain.ConversionState)
}
func (m *MockConversionFormService) EditAmount(ctx context.Context, text string) (domain.ConversionState, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) SelectFrom(ctx context.Context, currency domain.Currency) (domain.ConversionState, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) SelectTo(ctx context.Context, currency domain.Currency) (domain.ConversionState, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) Reverse(ctx context.Context) (domain.ConversionState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) Submit(ctx context.Context) (domain.ConversionState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) Clear(ctx context.Context) (domain.ConversionState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}
func (m *MockConversionFormService) UpdateRate(ctx context.Context, from, to domain.Currency, rate float64) (domain.ConversionState, error) {
	args := m.Called(ctx, from, to, rate)
	return args.Get(0).(domain.ConversionState), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ConversionFormSvcFacade = (*MockConversionFormService)(nil)

// --- Test Suite Setup ---
type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockConversionFormService
	cfg         *config.Config
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockConversionFormService)
	suite.cfg = &config.Config{
		IsProduction:       true,
		AdminJWTSecret:     "test-secret-key-that-is-long-enough",
		CORSAllowedOrigins: []string{"*"},
		RateLimit:          "1000-M",
	}
	suite.router = suite.newRouter(suite.cfg)
}

func (suite *HandlersTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{ConversionForm: suite.mockService}, logger)
	suite.Require().NoError(err)
	return r
}

// generateTestToken creates a signed admin JWT for testing.
func (suite *HandlersTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.cfg.AdminJWTSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlersTestSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func shownState() domain.ConversionState {
	s := domain.NewConversionState()
	s.AmountText = "50"
	s.From, s.To = domain.USD, domain.GBP
	s.LastAmount, s.LastResult = "50", "36"
	s.LastFrom, s.LastTo = domain.USD, domain.GBP
	s.ResultVisible = true
	return s
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestGetState() {
	suite.mockService.On("State").Return(shownState()).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversion", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("shown", resp.Phase)
	suite.Require().NotNil(resp.Output)
	suite.Equal("36", *resp.Output)
	suite.Equal("Last Conversion: 50 USD = 36 GBP", resp.Summary)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestGetState_OutputHiddenWhenIdle() {
	suite.mockService.On("State").Return(domain.NewConversionState()).Once()

	w := suite.do(http.MethodGet, "/api/v1/conversion", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("idle", resp.Phase)
	suite.Nil(resp.Output)
	suite.Equal("Last Conversion: 0 default = 0 default", resp.Summary)
}

func (suite *HandlersTestSuite) TestUpdateAmount_Success() {
	state := domain.NewConversionState()
	state.AmountText = "12.5"
	suite.mockService.On("EditAmount", mock.Anything, "12.5").Return(state, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/conversion/amount", `{"amount":"12.5"}`, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("12.5", resp.Amount)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestUpdateAmount_SpecialCharacters() {
	state := domain.NewConversionState()
	suite.mockService.On("EditAmount", mock.Anything, "$$").Return(state, apperrors.ErrSpecialCharacters).Once()

	w := suite.do(http.MethodPut, "/api/v1/conversion/amount", `{"amount":"$$"}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Invalid Input - Special characters are not allowed.", resp.Error)
	suite.Require().NotNil(resp.State)
	suite.Equal("", resp.State.Amount)
}

func (suite *HandlersTestSuite) TestUpdateAmount_MalformedJSON() {
	w := suite.do(http.MethodPut, "/api/v1/conversion/amount", `{"amount":`, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "EditAmount", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestSelectFrom_CaseInsensitive() {
	state := domain.NewConversionState()
	state.From = domain.EUR
	suite.mockService.On("SelectFrom", mock.Anything, domain.EUR).Return(state, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/conversion/from", `{"currency":"eur"}`, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSelectTo_UnsupportedCurrency() {
	w := suite.do(http.MethodPut, "/api/v1/conversion/to", `{"currency":"JPY"}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SelectTo", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestReverse() {
	state := domain.NewConversionState()
	state.From, state.To = domain.GBP, domain.USD
	suite.mockService.On("Reverse", mock.Anything).Return(state, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversion/reverse", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("GBP", resp.FromCurrency)
	suite.Equal("USD", resp.ToCurrency)
}

func (suite *HandlersTestSuite) TestSubmit_Success() {
	suite.mockService.On("Submit", mock.Anything).Return(shownState(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversion/submit", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("36", resp.LastConversion.Output)
}

func (suite *HandlersTestSuite) TestSubmit_UndefinedConversion() {
	suite.mockService.On("Submit", mock.Anything).Return(domain.NewConversionState(), apperrors.ErrUndefinedConversion).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversion/submit", "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("undefined conversion", resp.Error)
}

func (suite *HandlersTestSuite) TestSubmit_InternalError() {
	suite.mockService.On("Submit", mock.Anything).Return(domain.NewConversionState(), context.DeadlineExceeded).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversion/submit", "", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestClear() {
	suite.mockService.On("Clear", mock.Anything).Return(domain.NewConversionState(), nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/conversion", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestListRates() {
	suite.mockService.On("State").Return(domain.NewConversionState()).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Rates, 6)
	suite.Equal(0.72, resp.Rates["USD_GBP"])
}

func (suite *HandlersTestSuite) TestUpdateRate_Unauthorized() {
	w := suite.do(http.MethodPut, "/api/v1/rates/USD/GBP", `{"rate":0.8}`, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestUpdateRate_Success() {
	state := domain.NewConversionState()
	state.Rates = state.Rates.Clone()
	state.Rates["USD_GBP"] = 0.8
	suite.mockService.On("UpdateRate", mock.Anything, domain.USD, domain.GBP, 0.8).Return(state, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/rates/usd/gbp", `{"rate":0.8}`, map[string]string{
		"Authorization": "Bearer " + suite.generateTestToken("ops"),
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(0.8, resp.Rates["USD_GBP"])
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestUpdateRate_NonPositiveRate() {
	w := suite.do(http.MethodPut, "/api/v1/rates/USD/GBP", `{"rate":-1}`, map[string]string{
		"Authorization": "Bearer " + suite.generateTestToken("ops"),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateRate_RouteAbsentWithoutSecret() {
	cfg := *suite.cfg
	cfg.AdminJWTSecret = ""
	suite.router = suite.newRouter(&cfg)

	w := suite.do(http.MethodPut, "/api/v1/rates/USD/GBP", `{"rate":0.8}`, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestForm_Render() {
	suite.mockService.On("State").Return(shownState()).Once()

	w := suite.do(http.MethodGet, "/", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, `value="36" readonly`)
	suite.Contains(body, "Last Conversion: 50 USD = 36 GBP")
	suite.Contains(body, `<option value="default">Select</option>`)
}

func (suite *HandlersTestSuite) TestForm_PostSubmit() {
	idle := domain.NewConversionState()
	edited := idle
	edited.AmountText = "50"
	withFrom := edited
	withFrom.From = domain.USD
	withTo := withFrom
	withTo.To = domain.GBP

	suite.mockService.On("State").Return(idle).Once()
	suite.mockService.On("EditAmount", mock.Anything, "50").Return(edited, nil).Once()
	suite.mockService.On("SelectFrom", mock.Anything, domain.USD).Return(withFrom, nil).Once()
	suite.mockService.On("SelectTo", mock.Anything, domain.GBP).Return(withTo, nil).Once()
	suite.mockService.On("Submit", mock.Anything).Return(shownState(), nil).Once()

	form := url.Values{"amount": {"50"}, "from": {"USD"}, "to": {"GBP"}, "action": {"submit"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Last Conversion: 50 USD = 36 GBP")
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestForm_PostShowsNotice() {
	idle := domain.NewConversionState()
	suite.mockService.On("State").Return(idle).Once()
	suite.mockService.On("EditAmount", mock.Anything, "abc").Return(idle, apperrors.ErrInvalidNumber).Once()

	form := url.Values{"amount": {"abc"}, "from": {"default"}, "to": {"default"}, "action": {"update"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Invalid Input Please enter a valid numeric value.")
}

func (suite *HandlersTestSuite) TestForm_PostClearIgnoresInvalidAmount() {
	suite.mockService.On("Clear", mock.Anything).Return(domain.NewConversionState(), nil).Once()

	form := url.Values{"amount": {"abc"}, "from": {"JPY"}, "to": {"USD"}, "action": {"clear"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.NotContains(body, "Invalid Input")
	suite.Contains(body, "Last Conversion: 0 default = 0 default")
	suite.mockService.AssertExpectations(suite.T())
	suite.mockService.AssertNotCalled(suite.T(), "EditAmount", mock.Anything, mock.Anything)
}
