// Package create реализует HTTP-обработчик создания контракта подписки
// для покупателя.
//
// Handler принимает JSON-запрос с данными подписки, строит вход мутации и
// вызывает оркестратор: атомарное создание или draft/commit-последовательность.
// Ошибки валидации и бизнес-отказы Shopify транслируются в 400, нарушения
// протокола и транспортные ошибки — в 500, истёкший дедлайн — в 504.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/services/contract"
)

// Handler управляет HTTP-запросами на создание контрактов подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Оркестратор создания контракта
}

// Service описывает интерфейс оркестратора создания контракта.
type Service interface {
	Create(ctx context.Context, req models.SubscriptionRequest) (*contract.CreateResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// createdResponse — тело успешного ответа.
type createdResponse struct {
	Message  string          `json:"message"`
	Contract json.RawMessage `json:"contract"`
	DraftID  string          `json:"draftId,omitempty"`
}

// ServeHTTP godoc
// @Summary Создать подписку покупателя
// @Description Создает контракт подписки в Shopify: атомарно или через draft/commit, если в теле указан useDraft.
// @Tags UserSubscriptions
// @Accept  json
// @Produce  json
// @Param request body models.SubscriptionRequest true "Данные подписки"
// @Success 201 {object} map[string]any "Созданный контракт"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или бизнес-отказ Shopify"
// @Failure 500 {object} response.ErrorResponse "Нарушение протокола или транспортная ошибка"
// @Failure 504 {object} response.ErrorResponse "Истёк дедлайн запроса к Shopify"
// @Router /user-subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usersubscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		var validationErr *contract.ValidationError
		if errors.As(err, &validationErr) {
			log.Error("request validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(validationErr.Error()))
			return
		}
		var lineErr *contract.LineAddError
		if errors.As(err, &lineErr) {
			log.Error("failed to add subscription line",
				slog.String("variant_id", lineErr.VariantID), sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ErrorResponse{
				Error:           "Failed to add subscription line",
				UserErrors:      lineErr.UserErrors,
				FailedVariantID: lineErr.VariantID,
			})
			return
		}
		log.Error("failed to create subscription contract", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription contract created", slog.String("draft_id", result.DraftID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, createdResponse{
		Message:  "Subscription created successfully",
		Contract: result.Contract,
		DraftID:  result.DraftID,
	})
}
