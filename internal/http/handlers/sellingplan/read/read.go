// Package read реализует HTTP-обработчик получения группы планов продаж по ID.
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
	"github.com/magabrotheeeer/storefront-relay/internal/services/sellingplan"
)

// Handler обрабатывает запросы на получение одной группы планов продаж.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис групп планов продаж
}

// Service описывает интерфейс сервиса групп планов продаж.
type Service interface {
	GetGroup(ctx context.Context, id string) (json.RawMessage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Группа планов продаж по ID
// @Description Возвращает одну группу планов продаж. Числовой ID приводится к GID.
// @Tags SellingPlans
// @Produce  json
// @Param id path string true "ID группы планов продаж"
// @Success 200 {object} object "Группа планов продаж"
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /selling-plans/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sellingplan.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	group, err := h.service.GetGroup(r.Context(), id)
	if err != nil {
		if errors.Is(err, sellingplan.ErrNotFound) {
			log.Info("selling plan group not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Selling plan group not found"))
			return
		}
		log.Error("failed to fetch selling plan group", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, group)
}
