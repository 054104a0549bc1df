// Package calculaterate реализует HTTP-обработчик расчёта стоимости доставки
// по адресу покупателя.
package calculaterate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/services/shipping"
)

// Handler обрабатывает запросы на расчёт стоимости доставки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис зон доставки
	validate *validator.Validate // Валидатор тела запроса
}

// Service описывает интерфейс сервиса зон доставки.
type Service interface {
	CalculateRate(ctx context.Context, req models.ShippingRateRequest) (*shipping.RateResult, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

type rateResponse struct {
	Rate     *models.ShippingRate `json:"rate"`
	Price    float64              `json:"price"`
	Currency string               `json:"currency,omitempty"`
	ZoneID   int64                `json:"zoneId,omitempty"`
	ZoneName string               `json:"zoneName,omitempty"`
	Message  string               `json:"message,omitempty"`
}

// ServeHTTP godoc
// @Summary Расчёт стоимости доставки
// @Description Подбирает самый дешёвый тариф доставки для указанного адреса.
// @Tags ShippingZones
// @Accept  json
// @Produce  json
// @Param body body models.ShippingRateRequest true "Адрес покупателя"
// @Success 200 {object} rateResponse "Подобранный тариф или причина его отсутствия"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации тела запроса"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /shipping-zones/calculate-rate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shippingzone.calculaterate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ShippingRateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	result, err := h.service.CalculateRate(r.Context(), req)
	if err != nil {
		log.Error("failed to calculate shipping rate", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, rateResponse{
		Rate:     result.Rate,
		Price:    result.Price,
		Currency: result.Currency,
		ZoneID:   result.ZoneID,
		ZoneName: result.ZoneName,
		Message:  result.Message,
	})
}
