// Package update реализует HTTP-обработчик обновления покупателя.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на обновление покупателя.
type Handler struct {
	log    *slog.Logger // Логгер для записи информации и ошибок
	client Client       // Клиент Admin REST API
}

// Client описывает интерфейс клиента Admin REST API.
type Client interface {
	Put(ctx context.Context, path string, data any) (*shopify.RestResponse, error)
}

// New создает новый Handler.
func New(log *slog.Logger, client Client) *Handler {
	return &Handler{log: log, client: client}
}

// ServeHTTP godoc
// @Summary Обновить покупателя
// @Description Обновляет покупателя в Shopify; тело запроса передаётся как есть.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param id path string true "ID покупателя"
// @Param request body map[string]any true "Данные покупателя"
// @Success 200 {object} map[string]any "Обновлённый покупатель"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var customer json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	resp, err := h.client.Put(r.Context(), "customers/"+chi.URLParam(r, "id"),
		map[string]any{"customer": customer})
	if err != nil {
		log.Error("failed to update customer", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	updated, err := resp.Resource("customer")
	if err != nil {
		log.Error("customer missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, updated)
}
