package contract

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

// MockGraphQLClient реализует интерфейс contract.GraphQLClient
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

func TestCreateAtomicSuccess(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, atomicCreateMutation, mock.MatchedBy(func(vars map[string]any) bool {
		input, ok := vars["input"].(*Input)
		return ok && input.CustomerID == "gid://shopify/Customer/123"
	})).Return(gqlResponse(t, `{
		"subscriptionContractAtomicCreate": {
			"contract": {"id": "gid://shopify/SubscriptionContract/1", "status": "ACTIVE"},
			"userErrors": []
		}
	}`), nil)

	service := New(mockGql, testLogger())

	result, err := service.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Contains(t, string(result.Contract), "SubscriptionContract/1")
	assert.Empty(t, result.DraftID)
	mockGql.AssertNumberOfCalls(t, "Request", 1)
}

func TestCreateValidationFailsWithoutNetworkCall(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	service := New(mockGql, testLogger())

	req := validRequest()
	req.CustomerID = ""

	result, err := service.Create(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, result)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockGql.AssertNotCalled(t, "Request")
}

func TestCreateAtomicUserErrors(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, atomicCreateMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionContractAtomicCreate": {
			"contract": null,
			"userErrors": [{"field": ["input", "customerId"], "message": "Customer not found"}]
		}
	}`), nil)

	service := New(mockGql, testLogger())

	result, err := service.Create(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)
	var userErrs *shopify.UserErrorsError
	require.ErrorAs(t, err, &userErrs)
	assert.Equal(t, "Failed to create subscription contract", userErrs.Summary)
	require.Len(t, userErrs.UserErrors, 1)
	assert.Equal(t, "Customer not found", userErrs.UserErrors[0].Message)
}

func TestCreateAtomicMissingPayloadKey(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, atomicCreateMutation, mock.Anything).
		Return(gqlResponse(t, `{}`), nil)

	service := New(mockGql, testLogger())

	result, err := service.Create(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, result)
	var protoErr *shopify.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "subscriptionContractAtomicCreate", protoErr.Key)
}

func TestCreateWithDraftSuccess(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, draftCreateMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionContractCreate": {
			"draft": {"id": "gid://shopify/SubscriptionDraft/10"},
			"userErrors": []
		}
	}`), nil)
	mockGql.On("Request", mock.Anything, draftLineAddMutation, mock.MatchedBy(func(vars map[string]any) bool {
		return vars["draftId"] == "gid://shopify/SubscriptionDraft/10"
	})).Return(gqlResponse(t, `{
		"subscriptionDraftLineAdd": {"lineAdded": {"id": "l1"}, "userErrors": []}
	}`), nil)
	mockGql.On("Request", mock.Anything, draftCommitMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionDraftCommit": {
			"contract": {"id": "gid://shopify/SubscriptionContract/2"},
			"userErrors": []
		}
	}`), nil)

	service := New(mockGql, testLogger())

	req := validRequest()
	req.UseDraft = true

	result, err := service.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/SubscriptionDraft/10", result.DraftID)
	assert.Contains(t, string(result.Contract), "SubscriptionContract/2")
	mockGql.AssertNumberOfCalls(t, "Request", 3)
}

func TestCreateWithDraftLineFailureStopsSequence(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, draftCreateMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionContractCreate": {
			"draft": {"id": "gid://shopify/SubscriptionDraft/10"},
			"userErrors": []
		}
	}`), nil)
	mockGql.On("Request", mock.Anything, draftLineAddMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionDraftLineAdd": {
			"lineAdded": null,
			"userErrors": [{"field": ["input", "productVariantId"], "message": "Variant is out of stock"}]
		}
	}`), nil)

	service := New(mockGql, testLogger())

	req := validRequest()
	req.UseDraft = true

	result, err := service.Create(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, result)
	var lineErr *LineAddError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, "456", lineErr.VariantID)
	require.Len(t, lineErr.UserErrors, 1)
	assert.Equal(t, "Variant is out of stock", lineErr.UserErrors[0].Message)
	// commit после отказавшей строки не выполняется
	mockGql.AssertNumberOfCalls(t, "Request", 2)
}

func TestCreateWithDraftMissingDraftID(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, draftCreateMutation, mock.Anything).Return(gqlResponse(t, `{
		"subscriptionContractCreate": {"draft": null, "userErrors": []}
	}`), nil)

	service := New(mockGql, testLogger())

	req := validRequest()
	req.UseDraft = true

	result, err := service.Create(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, result)
	var protoErr *shopify.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "subscriptionContractCreate.draft", protoErr.Key)
}
