// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков relay. Формат тел повторяет контракт
// витрины: {"error": ...} для отказов, при бизнес-отказе Shopify к нему
// добавляется дословный список userErrors.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// ErrorResponse — структура тела ответа с ошибкой.
type ErrorResponse struct {
	Error           string              `json:"error" example:"invalid request body"`
	UserErrors      []shopify.UserError `json:"userErrors,omitempty"`
	FailedVariantID string              `json:"failedVariantId,omitempty"`
}

// Error возвращает тело ответа с текстом ошибки.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// UserErrors возвращает тело ответа с текстом ошибки и дословным списком
// бизнес-отказов Shopify.
func UserErrors(msg string, errs []shopify.UserError) ErrorResponse {
	return ErrorResponse{Error: msg, UserErrors: errs}
}

// RemoteError отображает ошибку обращения к Shopify на HTTP-статус и тело
// ответа: бизнес-отказ — 400 с дословными userErrors, нарушение протокола —
// 500, истёкший дедлайн — 504, прочие транспортные ошибки — 500 с текстом.
func RemoteError(err error) (int, ErrorResponse) {
	var userErrs *shopify.UserErrorsError
	if errors.As(err, &userErrs) {
		return http.StatusBadRequest, UserErrors(userErrs.Summary, userErrs.UserErrors)
	}
	var protoErr *shopify.ProtocolError
	if errors.As(err, &protoErr) {
		return http.StatusInternalServerError, Error(protoErr.Error())
	}
	if shopify.IsTimeout(err) {
		return http.StatusGatewayTimeout, Error("Shopify API request timed out")
	}
	return http.StatusInternalServerError, Error(err.Error())
}

// ValidationError формирует тело ответа на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
