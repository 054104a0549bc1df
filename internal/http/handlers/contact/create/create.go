// Package create реализует HTTP-обработчик создания покупателя.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на создание покупателя.
type Handler struct {
	log    *slog.Logger // Логгер для записи информации и ошибок
	client Client       // Клиент Admin REST API
}

// Client описывает интерфейс клиента Admin REST API.
type Client interface {
	Post(ctx context.Context, path string, data any) (*shopify.RestResponse, error)
}

// New создает новый Handler.
func New(log *slog.Logger, client Client) *Handler {
	return &Handler{log: log, client: client}
}

// ServeHTTP godoc
// @Summary Создать покупателя
// @Description Создает покупателя в Shopify. Тело запроса передаётся как есть и уже должно содержать конверт customer.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param request body map[string]any true "Данные покупателя"
// @Success 201 {object} map[string]any "Созданный покупатель"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	resp, err := h.client.Post(r.Context(), "customers", payload)
	if err != nil {
		log.Error("failed to create customer", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	created, err := resp.Resource("customer")
	if err != nil {
		log.Error("customer missing in response", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("customer created")
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, created)
}
