// Package list реализует HTTP-обработчик получения списка товаров магазина.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на получение списка товаров.
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

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает товары магазина из Shopify Admin REST API.
// @Tags Products
// @Produce  json
// @Success 200 {array} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	resp, err := h.client.Get(r.Context(), "products", nil)
	if err != nil {
		log.Error("failed to fetch products", sl.Err(err))
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

	// Счётчик товаров нужен только для диагностики, его отказ не критичен.
	if countResp, err := h.client.Get(r.Context(), "products/count", nil); err == nil {
		if count, ok := countResp.Body["count"]; ok {
			log.Info("fetched products", slog.String("total", string(count)))
		}
	}

	render.JSON(w, r, products)
}
