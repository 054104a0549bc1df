// Package jwtsign реализует HTTP-обработчик подписи произвольного payload
// в JWT-токен.
package jwtsign

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront-relay/internal/http/response"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/tokensign"
)

// Handler обрабатывает запросы на подпись JWT-токена.
type Handler struct {
	log *slog.Logger // Логгер для записи информации и ошибок
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

type request struct {
	Payload   map[string]any `json:"payload"`
	Secret    string         `json:"secret"`
	ExpiresIn string         `json:"expiresIn"`
	Algorithm string         `json:"algorithm"`
}

// ServeHTTP godoc
// @Summary Подпись JWT-токена
// @Description Подписывает переданный payload HMAC-алгоритмом и возвращает токен.
// @Tags Tokens
// @Accept  json
// @Produce  json
// @Param body body request true "Payload, секрет, срок действия и алгоритм"
// @Success 200 {object} map[string]string "Подписанный токен"
// @Failure 400 {object} response.ErrorResponse "Нет payload или секрета"
// @Failure 500 {object} response.ErrorResponse "Ошибка подписи"
// @Router /sign-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.jwtsign"
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

	if len(req.Payload) == 0 {
		log.Error("token payload is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Payload is required"))
		return
	}
	if req.Secret == "" {
		log.Error("token secret is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Secret is required"))
		return
	}

	token, err := tokensign.Sign(req.Payload, req.Secret, req.ExpiresIn, req.Algorithm)
	if err != nil {
		log.Error("failed to sign token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign token"))
		return
	}

	render.JSON(w, r, map[string]string{"token": token})
}
