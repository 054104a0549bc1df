// Package list реализует HTTP-обработчик получения списка покупателей.
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

// Handler обрабатывает запросы на получение списка покупателей.
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
// @Summary Список покупателей
// @Description Возвращает покупателей магазина из Shopify Admin REST API.
// @Tags Contacts
// @Produce  json
// @Success 200 {array} map[string]any "Список покупателей"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	resp, err := h.client.Get(r.Context(), "customers", nil)
	if err != nil {
		log.Error("failed to fetch customers", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	customers, err := resp.Resource("customers")
	if err != nil {
		log.Error("customers missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, customers)
}
