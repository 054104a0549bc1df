// Package themebyid реализует HTTP-обработчик получения темы магазина по ID.
package themebyid

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/theme"
)

// Handler обрабатывает запросы на получение одной темы магазина.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис тем магазина
}

// Service описывает интерфейс сервиса тем магазина.
type Service interface {
	GetTheme(ctx context.Context, id string) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Тема магазина по ID
// @Description Возвращает одну тему магазина.
// @Tags Themes
// @Produce  json
// @Param id path string true "ID темы"
// @Success 200 {object} object "Тема магазина"
// @Failure 404 {object} response.ErrorResponse "Тема не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /themes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.themeconfig.themebyid"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	result, err := h.service.GetTheme(r.Context(), id)
	if err != nil {
		if errors.Is(err, theme.ErrNotFound) {
			log.Info("theme not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Theme not found"))
			return
		}
		log.Error("failed to fetch theme", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, result)
}
