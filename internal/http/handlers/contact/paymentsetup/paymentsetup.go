// Package paymentsetup реализует HTTP-обработчик инициализации платёжного
// метода покупателя: Shopify создаёт setup intent и возвращает URL,
// на который витрина отправляет покупателя для ввода карты.
package paymentsetup

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
	"github.com/magabrotheeeer/storefront-relay/internal/services/contact"
)

// Handler обрабатывает запросы на инициализацию платёжного метода.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис платёжных методов покупателей
}

// Service описывает интерфейс сервиса платёжных методов.
type Service interface {
	CreateSetup(ctx context.Context, req contact.SetupRequest) (*contact.SetupResult, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type setupRequest struct {
	CustomerID         string         `json:"customerId"`
	PaymentMethod      map[string]any `json:"paymentMethod"`
	Origin             map[string]any `json:"origin"`
	SuccessRedirectURL string         `json:"successRedirectUrl"`
	CancelRedirectURL  string         `json:"cancelRedirectUrl"`
	Test               *bool          `json:"test"`
}

// ServeHTTP godoc
// @Summary Инициализировать платёжный метод
// @Description Создает setup intent для привязки платёжного метода покупателя и возвращает redirect URL.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param id path string true "ID покупателя"
// @Param request body map[string]any false "Параметры инициализации"
// @Success 201 {object} map[string]any "Идентификатор setup intent и redirect URL"
// @Failure 400 {object} response.ErrorResponse "Нет ID покупателя или бизнес-отказ Shopify"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /contacts/{id}/payment-methods [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.paymentsetup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req setupRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
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

	result, err := h.service.CreateSetup(r.Context(), contact.SetupRequest{
		CustomerID:         customerID,
		PaymentMethod:      req.PaymentMethod,
		Origin:             req.Origin,
		SuccessRedirectURL: req.SuccessRedirectURL,
		CancelRedirectURL:  req.CancelRedirectURL,
		Test:               req.Test,
	})
	if err != nil {
		if errors.Is(err, contact.ErrNoRedirectURL) {
			log.Error("no redirect url in response", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Shopify did not return a redirect URL for payment method setup"))
			return
		}
		log.Error("failed to initiate payment method setup", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("payment method setup initiated", slog.String("setup_intent_id", result.SetupIntentID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"message":       "Payment method setup initiated",
		"setupIntentId": result.SetupIntentID,
		"redirectUrl":   result.RedirectURL,
	})
}
