// Package list реализует HTTP-обработчик получения списка заказов магазина.
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

// Handler обрабатывает запросы на получение списка заказов.
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
// @Summary Список заказов
// @Description Возвращает заказы магазина из Shopify Admin REST API.
// @Tags Orders
// @Produce  json
// @Success 200 {array} map[string]any "Список заказов"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	resp, err := h.client.Get(r.Context(), "orders", nil)
	if err != nil {
		log.Error("failed to fetch orders", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	orders, err := resp.Resource("orders")
	if err != nil {
		log.Error("orders missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, orders)
}
