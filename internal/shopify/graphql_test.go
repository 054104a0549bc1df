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

func TestGraphQLClientRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/graphql.json", r.URL.Path)
		assert.Equal(t, "token-1", r.Header.Get("X-Shopify-Access-Token"))

		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "sellingPlanGroups")
		assert.Equal(t, float64(10), body.Variables["first"])

		_, _ = w.Write([]byte(`{"data": {"sellingPlanGroups": {"edges": []}}}`))
	}))
	defer srv.Close()

	client := NewGraphQLClient(srv.URL, "token-1", "2024-10", 5*time.Second)

	resp, err := client.Request(context.Background(),
		"query { sellingPlanGroups(first: $first) { edges { node { id } } } }",
		map[string]any{"first": 10})
	require.NoError(t, err)

	payload, err := resp.Payload("sellingPlanGroups")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "edges")
}

func TestGraphQLClientTopLevelErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "Field 'foo' doesn't exist"}, {"message": "Throttled"}]}`))
	}))
	defer srv.Close()

	client := NewGraphQLClient(srv.URL, "token-1", "2024-10", 5*time.Second)

	_, err := client.Request(context.Background(), "query { foo }", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field 'foo' doesn't exist")
	assert.Contains(t, err.Error(), "Throttled")
}

func TestGraphQLClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewGraphQLClient(srv.URL, "bad-token", "2024-10", 5*time.Second)

	_, err := client.Request(context.Background(), "query { shop { name } }", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestGraphQLResponsePayload(t *testing.T) {
	resp := &GraphQLResponse{Data: map[string]json.RawMessage{
		"sellingPlanGroup": json.RawMessage("null"),
		"shop":             json.RawMessage(`{"name": "dev"}`),
	}}

	payload, err := resp.Payload("shop")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "dev")

	_, err = resp.Payload("sellingPlanGroup")
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "sellingPlanGroup", protoErr.Key)

	_, err = resp.Payload("missing")
	assert.ErrorAs(t, err, &protoErr)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
	assert.False(t, IsTimeout(&APIError{StatusCode: 500, Status: "500 Internal Server Error"}))
}
