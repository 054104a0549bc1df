// Package read реализует HTTP-обработчик получения заказа по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на получение заказа по идентификатору.
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
// @Summary Получить заказ
// @Description Возвращает заказ магазина по идентификатору.
// @Tags Orders
// @Produce  json
// @Param id path string true "ID заказа"
// @Success 200 {object} map[string]any "Заказ"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /orders/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	resp, err := h.client.Get(r.Context(), "orders/"+chi.URLParam(r, "id"), nil)
	if err != nil {
		log.Error("failed to fetch order", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	order, err := resp.Resource("order")
	if err != nil {
		log.Error("order missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, order)
}
