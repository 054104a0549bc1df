// Package configs реализует HTTP-обработчик получения настроек всех основных
// тем магазина, включая извлечённую цветовую схему.
package configs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/theme"
)

// Handler обрабатывает запросы на получение настроек всех тем.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис тем магазина
}

// Service описывает интерфейс сервиса тем магазина.
type Service interface {
	ListConfigs(ctx context.Context) ([]theme.Config, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Настройки всех основных тем
// @Description Возвращает основные темы магазина вместе с цветовой схемой из settings_data.json.
// @Tags Themes
// @Produce  json
// @Success 200 {array} theme.Config "Темы с настройками"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /theme-configs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.themeconfig.configs"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	configs, err := h.service.ListConfigs(r.Context())
	if err != nil {
		log.Error("failed to fetch theme configs", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, configs)
}
