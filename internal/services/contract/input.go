// Package contract реализует создание контрактов подписки в Shopify:
// нормализацию политик, сборку GraphQL-входа и оркестрацию мутаций.
//
// Поддерживаются два пути создания: атомарная мутация
// subscriptionContractAtomicCreate и трёхшаговая последовательность
// draft → add-lines → commit. Оба пути собирают вход одинаково.
package contract

import (
	"strings"

	"github.com/magabrotheeeer/storefront-relay/internal/lib/gid"
	"github.com/magabrotheeeer/storefront-relay/internal/models"
)

// ValidationError — локальная ошибка валидации запроса. До Shopify такой
// запрос не доходит.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErr(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// PolicyInput — политика списаний или доставки в форме, которую ожидает
// схема Shopify: без обёртки recurring.
type PolicyInput struct {
	Interval      string `json:"interval"`
	IntervalCount int    `json:"intervalCount"`
	MinCycles     *int   `json:"minCycles,omitempty"`
}

// LineInput — строка подписки в форме схемы SubscriptionLineInput.
type LineInput struct {
	ProductVariantID string   `json:"productVariantId"`
	Quantity         int      `json:"quantity"`
	CurrentPrice     *float64 `json:"currentPrice,omitempty"`
	SellingPlanID    string   `json:"sellingPlanId,omitempty"`
}

// LineWrapper — элемент массива lines атомарной мутации.
type LineWrapper struct {
	Line LineInput `json:"line"`
}

// Details — вложенный объект contract входа мутации.
type Details struct {
	Status          string         `json:"status"`
	BillingPolicy   PolicyInput    `json:"billingPolicy"`
	DeliveryPolicy  PolicyInput    `json:"deliveryPolicy"`
	DeliveryPrice   float64        `json:"deliveryPrice"`
	PaymentMethodID string         `json:"paymentMethodId,omitempty"`
	DeliveryMethod  map[string]any `json:"deliveryMethod,omitempty"`
}

// Input — полный вход создания контракта. Атомарный путь отправляет его
// целиком, draft-путь раскладывает на три отдельных запроса.
type Input struct {
	CustomerID      string        `json:"customerId"`
	CurrencyCode    string        `json:"currencyCode"`
	NextBillingDate string        `json:"nextBillingDate,omitempty"`
	Lines           []LineWrapper `json:"lines"`
	Contract        Details       `json:"contract"`
}

// NormalizePolicy приводит политику к плоской форме схемы Shopify.
//
// Если политика пришла обёрнутой в recurring, interval и intervalCount
// берутся из вложенного объекта, а minCycles попадает в результат только
// если был задан. Плоская политика возвращается без изменений. Вход не
// мутируется.
func NormalizePolicy(p models.PolicyRequest) PolicyInput {
	if p.Recurring != nil {
		return PolicyInput{
			Interval:      p.Recurring.Interval,
			IntervalCount: p.Recurring.IntervalCount,
			MinCycles:     p.Recurring.MinCycles,
		}
	}
	return PolicyInput{
		Interval:      p.Interval,
		IntervalCount: p.IntervalCount,
		MinCycles:     p.MinCycles,
	}
}

// BuildInput собирает вход создания контракта из запроса витрины.
//
// Правила включения и умолчания для каждого поля:
//   - customerId, lines (непустой), billingPolicy, deliveryPolicy обязательны;
//   - в каждой строке обязателен variantId, quantity по умолчанию 1,
//     currentPrice и sellingPlanId попадают во вход только если заданы;
//   - currencyCode по умолчанию "USD", status — "ACTIVE" (пустая строка
//     после обрезки пробелов считается незаданной), deliveryPrice — 0;
//   - paymentMethodId, deliveryMethod и nextBillingDate включаются только
//     если переданы.
//
// Все идентификаторы нормализуются в глобальную форму gid.
func BuildInput(req models.SubscriptionRequest) (*Input, error) {
	if req.CustomerID == "" {
		return nil, validationErr("Customer ID is required")
	}
	if len(req.Lines) == 0 {
		return nil, validationErr("At least one subscription line is required")
	}
	if req.BillingPolicy == nil {
		return nil, validationErr("billingPolicy is required")
	}
	if req.DeliveryPolicy == nil {
		return nil, validationErr("deliveryPolicy is required")
	}
	for _, line := range req.Lines {
		if line.VariantID == "" {
			return nil, validationErr("variantId is required for each line")
		}
	}

	lines := make([]LineWrapper, 0, len(req.Lines))
	for _, line := range req.Lines {
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		li := LineInput{
			ProductVariantID: gid.Normalize("ProductVariant", line.VariantID),
			Quantity:         quantity,
			CurrentPrice:     line.CurrentPrice,
		}
		if line.SellingPlanID != "" {
			li.SellingPlanID = gid.Normalize("SellingPlan", line.SellingPlanID)
		}
		lines = append(lines, LineWrapper{Line: li})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "ACTIVE"
	}

	var deliveryPrice float64
	if req.DeliveryPrice != nil {
		deliveryPrice = *req.DeliveryPrice
	}

	input := &Input{
		CustomerID:   gid.Normalize("Customer", req.CustomerID),
		CurrencyCode: currency,
		Lines:        lines,
		Contract: Details{
			Status:         status,
			BillingPolicy:  NormalizePolicy(*req.BillingPolicy),
			DeliveryPolicy: NormalizePolicy(*req.DeliveryPolicy),
			DeliveryPrice:  deliveryPrice,
			DeliveryMethod: req.DeliveryMethod,
		},
	}

	if req.PaymentMethodID != "" {
		input.Contract.PaymentMethodID = gid.Normalize("CustomerPaymentMethod", req.PaymentMethodID)
	}
	if req.NextBillingDate != "" {
		input.NextBillingDate = req.NextBillingDate
	}
	return input, nil
}
