// Package paginated реализует HTTP-обработчик постраничного списка товаров.
//
// Admin REST API использует курсорную пагинацию: курсор следующей страницы
// приходит в заголовке Link, relay извлекает его и отдаёт клиенту в поле
// next_page_info.
package paginated

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на постраничное чтение товаров.
type Handler struct {
	log    *slog.Logger // Логгер для записи информации и ошибок
	client Client       // Клиент Admin REST API
}

// Client описывает интерфейс клиента Admin REST API.
type Client interface {
	Get(ctx context.Context, path string, query url.Values) (*shopify.RestResponse, error)
}

// New создает новый Handler.
func New(log *slog.Logger, client Client) *Handler {
	return &Handler{log: log, client: client}
}

type pageResponse struct {
	Products     json.RawMessage `json:"products"`
	NextPageInfo string          `json:"next_page_info,omitempty"`
}

// ServeHTTP godoc
// @Summary Постраничный список товаров
// @Description Возвращает страницу товаров и курсор следующей страницы из заголовка Link.
// @Tags Products
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param page_info query string false "Курсор страницы"
// @Success 200 {object} map[string]any "Страница товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /products/paginated/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.paginated"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := 10
	if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && parsed > 0 {
		limit = parsed
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if pageInfo := r.URL.Query().Get("page_info"); pageInfo != "" {
		query.Set("page_info", pageInfo)
	}

	resp, err := h.client.Get(r.Context(), "products", query)
	if err != nil {
		log.Error("failed to fetch paginated products", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	products, err := resp.Resource("products")
	if err != nil {
		log.Error("products missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, pageResponse{
		Products:     products,
		NextPageInfo: shopify.NextPageInfo(resp.Headers),
	})
}
