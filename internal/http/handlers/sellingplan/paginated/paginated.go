// Package paginated реализует HTTP-обработчик курсорной выборки групп
// планов продаж.
package paginated

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/services/sellingplan"
)

// Handler обрабатывает запросы на курсорную выборку групп планов продаж.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис групп планов продаж
}

// Service описывает интерфейс сервиса групп планов продаж.
type Service interface {
	ListGroupsPaginated(ctx context.Context, limit int, after string) (*sellingplan.PaginatedGroups, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

type pageResponse struct {
	SellingPlanGroups []json.RawMessage    `json:"selling_plan_groups"`
	PageInfo          sellingplan.PageInfo `json:"page_info"`
	NextCursor        *string              `json:"next_cursor"`
}

// ServeHTTP godoc
// @Summary Страница групп планов продаж
// @Description Возвращает страницу групп планов продаж с курсором продолжения.
// @Tags SellingPlans
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param after query string false "Курсор продолжения"
// @Success 200 {object} pageResponse "Страница групп планов продаж"
// @Failure 500 {object} response.ErrorResponse "Ошибка обращения к Shopify"
// @Router /selling-plans/paginated [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sellingplan.paginated"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	after := r.URL.Query().Get("after")

	page, err := h.service.ListGroupsPaginated(r.Context(), limit, after)
	if err != nil {
		log.Error("failed to fetch selling plan groups page", sl.Err(err))
		status, body := response.RemoteError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, pageResponse{
		SellingPlanGroups: page.Groups,
		PageInfo:          page.PageInfo,
		NextCursor:        page.NextCursor,
	})
}
