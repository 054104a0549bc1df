// Package remove реализует HTTP-обработчик удаления группы планов продаж.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление группы планов продаж.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис групп планов продаж
}

// Service описывает интерфейс сервиса групп планов продаж.
type Service interface {
	DeleteGroup(ctx context.Context, id string) (string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type deletedResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deletedSellingPlanGroupId"`
}

// ServeHTTP godoc
// @Summary Удаление группы планов продаж
// @Description Удаляет группу планов продаж и возвращает ID удалённой группы.
// @Tags SellingPlans
// @Produce  json
// @Param id path string true "ID группы планов продаж"
// @Success 200 {object} deletedResponse "Группа удалена"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /selling-plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sellingplan.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	deletedID, err := h.service.DeleteGroup(r.Context(), id)
	if err != nil {
		log.Error("failed to delete selling plan group", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, deletedResponse{
		Message:   "Selling plan group deleted successfully",
		DeletedID: deletedID,
	})
}
