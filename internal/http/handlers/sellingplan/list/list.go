// Package list реализует HTTP-обработчик получения списка групп планов продаж.
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
)

// Handler обрабатывает запросы на получение списка групп планов продаж.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис групп планов продаж
}

// Service описывает интерфейс сервиса групп планов продаж.
type Service interface {
	ListGroups(ctx context.Context) ([]json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список групп планов продаж
// @Description Возвращает группы планов продаж магазина через Admin GraphQL API.
// @Tags SellingPlans
// @Produce  json
// @Success 200 {array} object "Группы планов продаж"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /selling-plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sellingplan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		log.Error("failed to fetch selling plan groups", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, groups)
}
