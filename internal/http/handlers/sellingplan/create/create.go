// Package create реализует HTTP-обработчик создания группы планов продаж.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
)

// Handler обрабатывает запросы на создание группы планов продаж.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис групп планов продаж
}

// Service описывает интерфейс сервиса групп планов продаж.
type Service interface {
	CreateGroup(ctx context.Context, input, resources json.RawMessage) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type request struct {
	Input     json.RawMessage `json:"input"`
	Resources json.RawMessage `json:"resources"`
}

// ServeHTTP godoc
// @Summary Создание группы планов продаж
// @Description Создаёт группу планов продаж. input и resources передаются в мутацию дословно.
// @Tags SellingPlans
// @Accept  json
// @Produce  json
// @Param body body request true "SellingPlanGroupInput и привязываемые ресурсы"
// @Success 201 {object} object "Созданная группа"
// @Failure 400 {object} response.ErrorResponse "Ошибка тела запроса или userErrors Shopify"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /selling-plans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sellingplan.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request body"))
		return
	}

	if len(req.Input) == 0 {
		log.Error("selling plan group input is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Selling plan group input is required"))
		return
	}

	group, err := h.service.CreateGroup(r.Context(), req.Input, req.Resources)
	if err != nil {
		log.Error("failed to create selling plan group", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, group)
}
