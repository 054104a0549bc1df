package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/products.json", r.URL.Path)
		assert.Equal(t, "token-1", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [{"id": 1}, {"id": 2}]}`))
	}))
	defer srv.Close()

	client := NewRestClient(srv.URL, "token-1", "2024-10", 5*time.Second)

	resp, err := client.Get(context.Background(), "products", map[string][]string{"limit": {"250"}})
	require.NoError(t, err)

	products, err := resp.Resource("products")
	require.NoError(t, err)
	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(products, &parsed))
	assert.Len(t, parsed, 2)
}

func TestRestClientPostSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		product := body["product"].(map[string]any)
		assert.Equal(t, "Coffee Beans", product["title"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"product": {"id": 7, "title": "Coffee Beans"}}`))
	}))
	defer srv.Close()

	client := NewRestClient(srv.URL, "token-1", "2024-10", 5*time.Second)

	resp, err := client.Post(context.Background(), "products",
		map[string]any{"product": map[string]any{"title": "Coffee Beans"}})
	require.NoError(t, err)

	product, err := resp.Resource("product")
	require.NoError(t, err)
	assert.Contains(t, string(product), "Coffee Beans")
}

func TestRestClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors": "Not Found"}`))
	}))
	defer srv.Close()

	client := NewRestClient(srv.URL, "token-1", "2024-10", 5*time.Second)

	_, err := client.Get(context.Background(), "products/999", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestRestResponseResourceMissingKey(t *testing.T) {
	resp := &RestResponse{Body: map[string]json.RawMessage{
		"order": json.RawMessage("null"),
	}}

	_, err := resp.Resource("order")
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "order", protoErr.Key)

	_, err = resp.Resource("product")
	assert.ErrorAs(t, err, &protoErr)
}

func TestNextPageInfo(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{
			name:     "есть следующая страница",
			link:     `<https://dev.myshopify.com/admin/api/2024-10/products.json?limit=10&page_info=abc123>; rel="next"`,
			expected: "abc123",
		},
		{
			name:     "есть previous и next",
			link:     `<https://dev.myshopify.com/admin/api/2024-10/products.json?page_info=prev1>; rel="previous", <https://dev.myshopify.com/admin/api/2024-10/products.json?page_info=next2>; rel="next"`,
			expected: "next2",
		},
		{
			name:     "только previous",
			link:     `<https://dev.myshopify.com/admin/api/2024-10/products.json?page_info=prev1>; rel="previous"`,
			expected: "",
		},
		{
			name:     "пустой заголовок",
			link:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.link != "" {
				headers.Set("Link", tt.link)
			}
			assert.Equal(t, tt.expected, NextPageInfo(headers))
		})
	}
}
