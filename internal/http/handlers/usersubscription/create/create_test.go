package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/services/contract"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.SubscriptionRequest) (*contract.CreateResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*contract.CreateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное атомарное создание",
			body: `{"customerId":"123","lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(&contract.CreateResult{
					Contract: json.RawMessage(`{"id":"gid://shopify/SubscriptionContract/1"}`),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"Subscription created successfully"`,
		},
		{
			name: "успешное создание через draft возвращает draftId",
			body: `{"customerId":"123","lines":[{"variantId":"456"}],"useDraft":true}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(&contract.CreateResult{
					Contract: json.RawMessage(`{"id":"gid://shopify/SubscriptionContract/2"}`),
					DraftID:  "gid://shopify/SubscriptionDraft/10",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"draftId":"gid://shopify/SubscriptionDraft/10"`,
		},
		{
			name:           "некорректный JSON в теле",
			body:           `{"customerId":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "ошибка валидации входа",
			body: `{"lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				_, valErr := contract.BuildInput(models.SubscriptionRequest{})
				m.On("Create", mock.Anything, mock.Anything).Return(nil, valErr)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Customer ID is required"`,
		},
		{
			name: "бизнес-отказ Shopify с дословными userErrors",
			body: `{"customerId":"123","lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, &shopify.UserErrorsError{
					Summary: "Failed to create subscription contract",
					UserErrors: []shopify.UserError{
						{Field: json.RawMessage(`["input","customerId"]`), Message: "Customer not found"},
					},
				})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Customer not found"`,
		},
		{
			name: "отказ на шаге добавления строки указывает variantId",
			body: `{"customerId":"123","lines":[{"variantId":"456"}],"useDraft":true}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, &contract.LineAddError{
					VariantID: "456",
					UserErrors: []shopify.UserError{
						{Message: "Variant is out of stock"},
					},
				})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"failedVariantId":"456"`,
		},
		{
			name: "нарушение протокола ответа",
			body: `{"customerId":"123","lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, &shopify.ProtocolError{Key: "subscriptionContractAtomicCreate"})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `subscriptionContractAtomicCreate`,
		},
		{
			name: "истёкший дедлайн запроса к Shopify",
			body: `{"customerId":"123","lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `"error":"Shopify API request timed out"`,
		},
		{
			name: "транспортная ошибка",
			body: `{"customerId":"123","lines":[{"variantId":"456"}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"connection refused"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/user-subscriptions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
