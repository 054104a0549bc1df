package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// GraphQLError — ошибка верхнего уровня GraphQL-ответа (не userErrors).
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLResponse — разобранный ответ Admin GraphQL API.
type GraphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []GraphQLError             `json:"errors"`
}

// Payload возвращает результат запроса или мутации key из секции data.
// Отсутствующий или null-результат — нарушение протокола интеграции.
func (r *GraphQLResponse) Payload(key string) (json.RawMessage, error) {
	raw, ok := r.Data[key]
	if !ok || isNull(raw) {
		return nil, &ProtocolError{Key: key}
	}
	return raw, nil
}

// GraphQLClient — клиент Admin GraphQL API магазина.
type GraphQLClient struct {
	storeDomain string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

// NewGraphQLClient создаёт клиент Admin GraphQL API для магазина storeDomain.
func NewGraphQLClient(storeDomain, accessToken, apiVersion string, timeout time.Duration) *GraphQLClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GraphQLClient{
		storeDomain: storeDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Request выполняет запрос или мутацию query с переменными variables.
//
// Ошибки верхнего уровня (errors) считаются отказом запроса: relay не
// различает их по кодам и возвращает общей ошибкой. Бизнес-отказы
// (userErrors) остаются внутри payload и разбираются вызывающей стороной.
func (c *GraphQLClient) Request(ctx context.Context, query string, variables map[string]any) (*GraphQLResponse, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/graphql.json", baseURL(c.storeDomain), c.apiVersion)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]any{
		"query":     query,
		"variables": variables,
	}); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues("graphql", http.MethodPost).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues("graphql", http.MethodPost, "error").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	requestsTotal.WithLabelValues("graphql", http.MethodPost, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed GraphQLResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(msgs, ", "))
	}
	return &parsed, nil
}
