// Package shopify реализует клиенты Admin REST и GraphQL API Shopify.
//
// Клиенты не содержат бизнес-логики: они выполняют запрос с токеном доступа
// магазина и возвращают тело ответа практически без изменений. Здесь же
// определена таксономия ошибок интеграции: бизнес-отказ (userErrors),
// нарушение протокола (отсутствие ожидаемого ключа) и транспортная ошибка.
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// UserError — бизнес-отказ, который Shopify возвращает внутри успешного
// транспортного ответа (например, несуществующий вариант товара).
// Field передаётся как есть: REST и GraphQL возвращают его в разной форме.
type UserError struct {
	Field   json.RawMessage `json:"field,omitempty"`
	Message string          `json:"message"`
}

// UserErrorsError — ошибка уровня бизнес-правил: мутация выполнилась,
// но Shopify отклонил операцию. Список userErrors отдаётся клиенту дословно.
type UserErrorsError struct {
	Summary    string      // Краткое описание для поля error ответа
	UserErrors []UserError // Список отказов из ответа Shopify
}

func (e *UserErrorsError) Error() string {
	return e.Summary
}

// ProtocolError — нарушение контракта интеграции: в ответе отсутствует
// ожидаемый ключ верхнего уровня. Это баг схемы или транспорта, а не
// бизнес-правило, поэтому наружу уходит 500.
type ProtocolError struct {
	Key string // Ключ, которого не оказалось в ответе
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected response from Shopify API: missing %q", e.Key)
}

// APIError — транспортная ошибка: Shopify вернул статус вне 2xx.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return "unexpected status from Shopify API: " + e.Status
}

// IsTimeout сообщает, истёк ли дедлайн исходящего запроса.
// Такие ошибки транслируются в 504 Gateway Timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
