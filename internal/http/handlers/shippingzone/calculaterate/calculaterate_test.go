package calculaterate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/services/shipping"
)

// MockService реализует интерфейс calculaterate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CalculateRate(ctx context.Context, req models.ShippingRateRequest) (*shipping.RateResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*shipping.RateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCalculateRateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "подобран тариф",
			body: `{"countryCode":"US","provinceCode":"CA"}`,
			setupMock: func(m *MockService) {
				m.On("CalculateRate", mock.Anything, models.ShippingRateRequest{
					CountryCode:  "US",
					ProvinceCode: "CA",
				}).Return(&shipping.RateResult{
					Rate: &models.ShippingRate{
						Price: 3.5,
						Raw:   json.RawMessage(`{"name":"CA Express","price":"3.50"}`),
					},
					Price:    3.5,
					Currency: "US",
					ZoneID:   1,
					ZoneName: "Domestic",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"zoneName":"Domestic"`,
		},
		{
			name: "нет подходящей зоны",
			body: `{"countryCode":"JP"}`,
			setupMock: func(m *MockService) {
				m.On("CalculateRate", mock.Anything, mock.Anything).Return(&shipping.RateResult{
					Message: "No matching shipping zone found for the provided address",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"No matching shipping zone found for the provided address"`,
		},
		{
			name:           "нет countryCode",
			body:           `{"provinceCode":"CA"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field CountryCode is a required field`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"countryCode":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/shipping-zones/calculate-rate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
