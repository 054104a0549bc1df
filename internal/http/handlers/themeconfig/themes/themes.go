// Package themes реализует HTTP-обработчик получения списка тем магазина.
package themes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
)

// Handler обрабатывает запросы на получение списка тем.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис тем магазина
}

// Service описывает интерфейс сервиса тем магазина.
type Service interface {
	ListThemes(ctx context.Context) ([]json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список тем магазина
// @Description Возвращает все темы магазина через Admin REST API.
// @Tags Themes
// @Produce  json
// @Success 200 {array} object "Темы магазина"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /themes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.themeconfig.themes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	themes, err := h.service.ListThemes(r.Context())
	if err != nil {
		log.Error("failed to fetch themes", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, themes)
}
