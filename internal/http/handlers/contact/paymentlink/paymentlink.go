// Package paymentlink реализует HTTP-обработчик привязки платёжного метода,
// созданного во внешнем платёжном сервисе, к покупателю Shopify.
package paymentlink

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/contact"
)

// Handler обрабатывает запросы на привязку платёжного метода.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис платёжных методов покупателей
}

// Service описывает интерфейс сервиса платёжных методов.
type Service interface {
	Link(ctx context.Context, req contact.LinkRequest) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type linkRequest struct {
	CustomerID      string         `json:"customerId"`
	RemoteReference map[string]any `json:"remoteReference"`
	BillingAddress  map[string]any `json:"billingAddress"`
	Test            *bool          `json:"test"`
}

// ServeHTTP godoc
// @Summary Привязать платёжный метод
// @Description Привязывает платёжный метод по внешней ссылке (remoteReference) к покупателю.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param id path string true "ID покупателя"
// @Param request body map[string]any true "remoteReference и необязательный billingAddress"
// @Success 201 {object} map[string]any "Привязанный платёжный метод"
// @Failure 400 {object} response.ErrorResponse "Нет обязательных полей или бизнес-отказ Shopify"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts/{id}/payment-methods/link [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.paymentlink"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		customerID = req.CustomerID
	}
	if customerID == "" {
		log.Error("customer id is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Customer ID is required"))
		return
	}
	if req.RemoteReference == nil {
		log.Error("remote reference is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("remoteReference payload is required"))
		return
	}

	paymentMethod, err := h.service.Link(r.Context(), contact.LinkRequest{
		CustomerID:      customerID,
		RemoteReference: req.RemoteReference,
		BillingAddress:  req.BillingAddress,
		Test:            req.Test,
	})
	if err != nil {
		log.Error("failed to link payment method", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("payment method linked")
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"message":       "Payment method linked successfully",
		"paymentMethod": paymentMethod,
	})
}
