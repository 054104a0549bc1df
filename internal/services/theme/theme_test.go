package theme

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// MockRestClient реализует интерфейс theme.RestClient
type MockRestClient struct {
	mock.Mock
}

func (m *MockRestClient) Get(ctx context.Context, path string, query url.Values) (*shopify.RestResponse, error) {
	args := m.Called(ctx, path, query)
	if res := args.Get(0); res != nil {
		return res.(*shopify.RestResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGraphQLClient реализует интерфейс theme.GraphQLClient
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

func TestExtractColorsStripsComments(t *testing.T) {
	service := New(nil, nil, testLogger())

	content := `/*
 * Шаблон settings_data.json начинается с комментария Shopify
 */
{"current": {"colors_accent_1": "#ff0000"}}`

	colors := service.extractColors(context.Background(), "gid://shopify/OnlineStoreTheme/1", content)

	require.NotNil(t, colors)
	current := colors["current"].(map[string]any)
	assert.Equal(t, "#ff0000", current["colors_accent_1"])
}

func TestExtractColorsBrokenSettingsGiveNil(t *testing.T) {
	service := New(nil, nil, testLogger())

	tests := []struct {
		name    string
		content string
	}{
		{name: "пустое содержимое", content: ""},
		{name: "только комментарий", content: "/* nothing else */"},
		{name: "некорректный JSON", content: `{"current": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, service.extractColors(context.Background(), "t1", tt.content))
		})
	}
}

func TestExtractColorsResolvesLogoURL(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, assetURLQuery, map[string]any{
		"themeId":  "gid://shopify/OnlineStoreTheme/1",
		"assetKey": "assets/logo.png",
	}).Return(gqlResponse(t, `{
		"theme": {"asset": {"publicUrl": "https://cdn.shopify.com/logo.png"}}
	}`), nil)

	service := New(nil, mockGql, testLogger())

	content := `{"current": {"logo": "shopify://shop_images/logo.png"}}`
	colors := service.extractColors(context.Background(), "gid://shopify/OnlineStoreTheme/1", content)

	require.NotNil(t, colors)
	current := colors["current"].(map[string]any)
	assert.Equal(t, "https://cdn.shopify.com/logo.png", current["logo"])
	mockGql.AssertExpectations(t)
}

func TestExtractColorsKeepsLogoOnResolutionFailure(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, assetURLQuery, mock.Anything).
		Return(nil, errors.New("network error"))

	service := New(nil, mockGql, testLogger())

	content := `{"current": {"logo": "shopify://shop_images/logo.png"}}`
	colors := service.extractColors(context.Background(), "t1", content)

	require.NotNil(t, colors)
	current := colors["current"].(map[string]any)
	assert.Equal(t, "shopify://shop_images/logo.png", current["logo"])
}

func TestGetThemeNotFound(t *testing.T) {
	mockRest := new(MockRestClient)
	mockRest.On("Get", mock.Anything, "themes/42", url.Values(nil)).
		Return(&shopify.RestResponse{Body: map[string]json.RawMessage{
			"theme": json.RawMessage("null"),
		}}, nil)

	service := New(mockRest, nil, testLogger())

	_, err := service.GetTheme(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetConfigFallsBackToPublishedTheme(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, publishedThemeQuery, mock.Anything).Return(gqlResponse(t, `{
		"themes": {"edges": [{"node": {"id": "gid://shopify/OnlineStoreTheme/1", "role": "MAIN"}}]}
	}`), nil)

	service := New(nil, mockGql, testLogger())

	cfg, err := service.GetConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "OnlineStoreTheme/1")
}

func TestListConfigsExtractsSettings(t *testing.T) {
	mockGql := new(MockGraphQLClient)
	mockGql.On("Request", mock.Anything, allConfigsQuery, mock.Anything).Return(gqlResponse(t, `{
		"themes": {"edges": [{"node": {
			"id": "gid://shopify/OnlineStoreTheme/1",
			"name": "Dawn",
			"role": "MAIN",
			"files": {"edges": [{"node": {
				"filename": "config/settings_data.json",
				"body": {"content": "{\"current\": {\"colors_accent_1\": \"#112233\"}}"}
			}}]}
		}}]}
	}`), nil)

	service := New(nil, mockGql, testLogger())

	configs, err := service.ListConfigs(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Dawn", configs[0].Name)
	require.NotNil(t, configs[0].Colors)
	current := configs[0].Colors["current"].(map[string]any)
	assert.Equal(t, "#112233", current["colors_accent_1"])
}
