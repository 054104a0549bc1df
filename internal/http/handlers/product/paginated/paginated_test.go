package paginated

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// MockClient реализует интерфейс paginated.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, path string, query url.Values) (*shopify.RestResponse, error) {
	args := m.Called(ctx, path, query)
	if res := args.Get(0); res != nil {
		return res.(*shopify.RestResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPaginatedHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockClient)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "страница с курсором продолжения",
			url:  "/products/paginated/all?limit=2",
			setupMock: func(m *MockClient) {
				headers := http.Header{}
				headers.Set("Link", `<https://dev.myshopify.com/admin/api/2024-10/products.json?page_info=next123>; rel="next"`)
				m.On("Get", mock.Anything, "products", url.Values{"limit": []string{"2"}}).
					Return(&shopify.RestResponse{
						Body: map[string]json.RawMessage{
							"products": json.RawMessage(`[{"id": 1}, {"id": 2}]`),
						},
						Headers: headers,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"next_page_info":"next123"`,
		},
		{
			name: "последняя страница без курсора",
			url:  "/products/paginated/all",
			setupMock: func(m *MockClient) {
				m.On("Get", mock.Anything, "products", url.Values{"limit": []string{"10"}}).
					Return(&shopify.RestResponse{
						Body: map[string]json.RawMessage{
							"products": json.RawMessage(`[{"id": 3}]`),
						},
						Headers: http.Header{},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"products":[{"id":3}]`,
		},
		{
			name: "курсор страницы передаётся в запрос",
			url:  "/products/paginated/all?limit=5&page_info=abc",
			setupMock: func(m *MockClient) {
				m.On("Get", mock.Anything, "products",
					url.Values{"limit": []string{"5"}, "page_info": []string{"abc"}}).
					Return(&shopify.RestResponse{
						Body: map[string]json.RawMessage{
							"products": json.RawMessage(`[]`),
						},
						Headers: http.Header{},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"products":[]`,
		},
		{
			name: "в ответе нет ключа products",
			url:  "/products/paginated/all",
			setupMock: func(m *MockClient) {
				m.On("Get", mock.Anything, "products", mock.Anything).
					Return(&shopify.RestResponse{
						Body:    map[string]json.RawMessage{},
						Headers: http.Header{},
					}, nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `missing \"products\"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockClient)
			tt.setupMock(mockClient)

			handler := New(logger, mockClient)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockClient.AssertExpectations(t)
		})
	}
}
