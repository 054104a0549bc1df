// Package config реализует HTTP-обработчик получения конфигурации темы:
// по явному ID или для опубликованной темы магазина.
package config

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

// Handler обрабатывает запросы на получение конфигурации темы.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис тем магазина
}

// Service описывает интерфейс сервиса тем магазина.
type Service interface {
	GetConfig(ctx context.Context, themeID string) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Конфигурация темы
// @Description Возвращает конфигурацию темы по ID из пути или query-параметра themeId; без ID — конфигурацию опубликованной темы.
// @Tags Themes
// @Produce  json
// @Param themeId query string false "ID темы"
// @Success 200 {object} object "Конфигурация темы"
// @Failure 404 {object} response.ErrorResponse "Тема не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /theme-config [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.themeconfig.config"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	themeID := chi.URLParam(r, "id")
	if themeID == "" {
		themeID = r.URL.Query().Get("themeId")
	}

	cfg, err := h.service.GetConfig(r.Context(), themeID)
	if err != nil {
		if errors.Is(err, theme.ErrNotFound) {
			log.Info("theme config not found", slog.String("theme_id", themeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Theme not found"))
			return
		}
		log.Error("failed to fetch theme config", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, cfg)
}
