package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RestResponse — ответ Admin REST API: разобранный JSON-конверт верхнего
// уровня и заголовки (заголовок Link нужен для курсорной пагинации).
type RestResponse struct {
	Body    map[string]json.RawMessage
	Headers http.Header
}

// Resource возвращает значение ключа key из конверта ответа.
// Отсутствие ключа — нарушение протокола интеграции.
func (r *RestResponse) Resource(key string) (json.RawMessage, error) {
	raw, ok := r.Body[key]
	if !ok || isNull(raw) {
		return nil, &ProtocolError{Key: key}
	}
	return raw, nil
}

// RestClient — клиент Admin REST API магазина.
type RestClient struct {
	storeDomain string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

// NewRestClient создаёт клиент Admin REST API для магазина storeDomain.
func NewRestClient(storeDomain, accessToken, apiVersion string, timeout time.Duration) *RestClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RestClient{
		storeDomain: storeDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *RestClient) endpoint(path string, query url.Values) string {
	path = strings.TrimPrefix(path, "/")
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}
	u := fmt.Sprintf("%s/admin/api/%s/%s", baseURL(c.storeDomain), c.apiVersion, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *RestClient) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *RestClient) do(req *http.Request) (*RestResponse, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues("rest", req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues("rest", req.Method, "error").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	requestsTotal.WithLabelValues("rest", req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	body := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("decode response body: %w", err)
		}
	}
	return &RestResponse{Body: body, Headers: resp.Header}, nil
}

// Get выполняет GET-запрос к path (например, "products" или "products/42").
func (c *RestClient) Get(ctx context.Context, path string, query url.Values) (*RestResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Post выполняет POST-запрос с телом data.
func (c *RestClient) Post(ctx context.Context, path string, data any) (*RestResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(path, nil), data)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Put выполняет PUT-запрос с телом data.
func (c *RestClient) Put(ctx context.Context, path string, data any) (*RestResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPut, c.endpoint(path, nil), data)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Delete выполняет DELETE-запрос к path.
func (c *RestClient) Delete(ctx context.Context, path string) (*RestResponse, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// baseURL дополняет домен магазина схемой https, если она не указана явно.
func baseURL(storeDomain string) string {
	if strings.Contains(storeDomain, "://") {
		return strings.TrimSuffix(storeDomain, "/")
	}
	return "https://" + storeDomain
}
