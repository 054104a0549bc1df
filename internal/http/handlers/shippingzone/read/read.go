// Package read реализует HTTP-обработчик получения зоны доставки по ID.
package read

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
	"github.com/magabrotheeeer/storefront-relay/internal/services/shipping"
)

// Handler обрабатывает запросы на получение одной зоны доставки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис зон доставки
}

// Service описывает интерфейс сервиса зон доставки.
type Service interface {
	GetZone(ctx context.Context, id string) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Зона доставки по ID
// @Description Возвращает одну зону доставки магазина.
// @Tags ShippingZones
// @Produce  json
// @Param id path string true "ID зоны доставки"
// @Success 200 {object} object "Зона доставки"
// @Failure 404 {object} response.ErrorResponse "Зона не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /shipping-zones/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shippingzone.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	zone, err := h.service.GetZone(r.Context(), id)
	if err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			log.Info("shipping zone not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Shipping zone not found"))
			return
		}
		log.Error("failed to fetch shipping zone", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, zone)
}
