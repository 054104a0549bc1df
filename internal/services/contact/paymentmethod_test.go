package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// MockGraphQLClient реализует интерфейс contact.GraphQLClient
type MockGraphQLClient struct {
	mock.Mock
}

func (m *MockGraphQLClient) Request(ctx context.Context, query string, variables map[string]any) (*shopify.GraphQLResponse, error) {
	args := m.Called(ctx, query, variables)
	if res := args.Get(0); res != nil {
		return res.(*shopify.GraphQLResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func gqlResponse(t *testing.T, data string) *shopify.GraphQLResponse {
	t.Helper()
	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(data), &parsed))
	return &shopify.GraphQLResponse{Data: parsed}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreateSetupDefaults(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, remoteCreateSetupMutation, mock.MatchedBy(func(vars map[string]any) bool {
		input := vars["input"].(map[string]any)
		paymentMethod := input["paymentMethod"].(map[string]any)
		origin := input["origin"].(map[string]any)
		return input["customerId"] == "gid://shopify/Customer/123" &&
			paymentMethod["type"] == "CARD" &&
			origin["channel"] == "ONLINE_STORE"
	})).Return(gqlResponse(t, `{
		"customerPaymentMethodRemoteCreate": {
			"setupIntent": {"id": "si_1", "nextAction": {"redirectUrl": "https://pay.example/setup"}},
			"userErrors": []
		}
	}`), nil)

	service := New(mockGql, testLogger())

	result, err := service.CreateSetup(context.Background(), SetupRequest{CustomerID: "123"})
	require.NoError(t, err)
	assert.Equal(t, "si_1", result.SetupIntentID)
	assert.Equal(t, "https://pay.example/setup", result.RedirectURL)
	mockGql.AssertExpectations(t)
}

func TestCreateSetupMissingRedirectURL(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, remoteCreateSetupMutation, mock.Anything).Return(gqlResponse(t, `{
		"customerPaymentMethodRemoteCreate": {
			"setupIntent": {"id": "si_1", "nextAction": null},
			"userErrors": []
		}
	}`), nil)

	service := New(mockGql, testLogger())

	_, err := service.CreateSetup(context.Background(), SetupRequest{CustomerID: "123"})
	assert.ErrorIs(t, err, ErrNoRedirectURL)
}

func TestLinkUserErrors(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, remoteLinkMutation, mock.Anything).Return(gqlResponse(t, `{
		"customerPaymentMethodRemoteCreate": {
			"customerPaymentMethod": null,
			"userErrors": [{"field": ["remoteReference"], "message": "Invalid remote reference"}]
		}
	}`), nil)

	service := New(mockGql, testLogger())

	_, err := service.Link(context.Background(), LinkRequest{
		CustomerID:      "123",
		RemoteReference: map[string]any{"stripePaymentMethod": map[string]any{}},
	})

	var userErrs *shopify.UserErrorsError
	require.ErrorAs(t, err, &userErrs)
	assert.Equal(t, "Failed to link payment method", userErrs.Summary)
}

func TestUpdateURL(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, updateURLMutation, map[string]any{
		"customerPaymentMethodId": "gid://shopify/CustomerPaymentMethod/pm-1",
	}).Return(gqlResponse(t, `{
		"customerPaymentMethodGetUpdateUrl": {
			"updatePaymentMethodUrl": "https://shop.example/update/pm-1",
			"userErrors": []
		}
	}`), nil)

	service := New(mockGql, testLogger())

	updateURL, err := service.UpdateURL(context.Background(), "pm-1")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/update/pm-1", updateURL)
}

func TestUpdateURLEmpty(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, updateURLMutation, mock.Anything).Return(gqlResponse(t, `{
		"customerPaymentMethodGetUpdateUrl": {"updatePaymentMethodUrl": "", "userErrors": []}
	}`), nil)

	service := New(mockGql, testLogger())

	_, err := service.UpdateURL(context.Background(), "pm-1")
	assert.ErrorIs(t, err, ErrNoUpdateURL)
}
