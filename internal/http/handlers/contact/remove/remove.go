// Package remove реализует HTTP-обработчик удаления покупателя.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// Handler обрабатывает запросы на удаление покупателя.
type Handler struct {
	log    *slog.Logger // Логгер для записи информации и ошибок
	client Client       // Клиент Admin REST API
}

// Client описывает интерфейс клиента Admin REST API.
type Client interface {
	Delete(ctx context.Context, path string) (*shopify.RestResponse, error)
}

// New создает новый Handler.
func New(log *slog.Logger, client Client) *Handler {
	return &Handler{log: log, client: client}
}

// ServeHTTP godoc
// @Summary Удалить покупателя
// @Description Удаляет покупателя по идентификатору.
// @Tags Contacts
// @Produce  json
// @Param id path string true "ID покупателя"
// @Success 200 {object} map[string]any "Подтверждение удаления"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if _, err := h.client.Delete(r.Context(), "customers/"+chi.URLParam(r, "id")); err != nil {
		log.Error("failed to delete customer", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("customer deleted", slog.String("id", chi.URLParam(r, "id")))
	render.JSON(w, r, map[string]string{"message": "Contact deleted"})
}
