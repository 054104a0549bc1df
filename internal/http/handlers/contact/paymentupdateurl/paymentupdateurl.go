// Package paymentupdateurl реализует HTTP-обработчик получения URL страницы
// обновления платёжного метода покупателя.
package paymentupdateurl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/contact"
)

// Handler обрабатывает запросы на получение URL обновления платёжного метода.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис платёжных методов покупателей
}

// Service описывает интерфейс сервиса платёжных методов.
type Service interface {
	UpdateURL(ctx context.Context, paymentMethodID string) (string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary URL обновления платёжного метода
// @Description Возвращает URL страницы, на которой покупатель обновляет платёжный метод.
// @Tags Contacts
// @Produce  json
// @Param paymentMethodId path string true "ID платёжного метода"
// @Success 200 {object} map[string]any "URL обновления"
// @Failure 400 {object} response.ErrorResponse "Нет ID метода или бизнес-отказ Shopify"
// @Failure 404 {object} response.ErrorResponse "URL обновления не вернулся"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts/payment-methods/{paymentMethodId}/update-url [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.paymentupdateurl"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	paymentMethodID := chi.URLParam(r, "paymentMethodId")
	if paymentMethodID == "" {
		log.Error("payment method id is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Payment method ID is required"))
		return
	}

	updateURL, err := h.service.UpdateURL(r.Context(), paymentMethodID)
	if err != nil {
		if errors.Is(err, contact.ErrNoUpdateURL) {
			log.Error("no update url in response", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("No update URL returned for this payment method"))
			return
		}
		log.Error("failed to fetch payment method update url", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, map[string]string{"updatePaymentMethodUrl": updateURL})
}
