// Package list реализует HTTP-обработчик получения списка зон доставки.
package list

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/shipping"
)

// Handler обрабатывает запросы на получение списка зон доставки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис зон доставки
}

// Service описывает интерфейс сервиса зон доставки.
type Service interface {
	ListZones(ctx context.Context) (*shipping.ZonesResult, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type listResponse struct {
	ShippingZones []json.RawMessage `json:"shipping_zones"`
	Count         int               `json:"count"`
}

// ServeHTTP godoc
// @Summary Список зон доставки
// @Description Возвращает все зоны доставки магазина через Admin REST API.
// @Tags ShippingZones
// @Produce  json
// @Success 200 {object} listResponse "Зоны доставки"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /shipping-zones [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shippingzone.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.ListZones(r.Context())
	if err != nil {
		log.Error("failed to fetch shipping zones", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, listResponse{
		ShippingZones: result.Zones,
		Count:         result.Count,
	})
}
