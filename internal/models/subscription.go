// Package models содержит структуры запросов и ответов relay.
// Все сущности живут ровно один HTTP-запрос: локального хранилища нет,
// источником истины остаётся Shopify.
package models

// SubscriptionRequest — запрос витрины на создание контракта подписки.
type SubscriptionRequest struct {
	CustomerID      string            `json:"customerId"`      // Идентификатор покупателя (сырой или gid)
	Currency        string            `json:"currency"`        // Код валюты, по умолчанию USD
	Lines           []LineItemRequest `json:"lines"`           // Строки подписки, минимум одна
	BillingPolicy   *PolicyRequest    `json:"billingPolicy"`   // Политика списаний
	DeliveryPolicy  *PolicyRequest    `json:"deliveryPolicy"`  // Политика доставки
	PaymentMethodID string            `json:"paymentMethodId"` // Необязательный метод оплаты
	NextBillingDate string            `json:"nextBillingDate"` // Необязательная дата следующего списания (ISO)
	Status          string            `json:"status"`          // Статус контракта, по умолчанию ACTIVE
	DeliveryPrice   *float64          `json:"deliveryPrice"`   // Стоимость доставки, по умолчанию 0
	DeliveryMethod  map[string]any    `json:"deliveryMethod"`  // Необязательный способ доставки, передаётся как есть
	UseDraft        bool              `json:"useDraft"`        // true — создавать через draft/commit вместо атомарной мутации
}

// LineItemRequest — одна строка подписки.
type LineItemRequest struct {
	VariantID     string   `json:"variantId"`     // Идентификатор варианта товара, обязателен
	Quantity      int      `json:"quantity"`      // Количество, по умолчанию 1
	CurrentPrice  *float64 `json:"currentPrice"`  // Необязательная текущая цена
	SellingPlanID string   `json:"sellingPlanId"` // Необязательный план продаж
}

// PolicyRequest — политика списаний или доставки. Витрина присылает её либо
// в плоском виде, либо обёрнутой в recurring; relay приводит к плоской форме.
type PolicyRequest struct {
	Interval      string           `json:"interval,omitempty"`
	IntervalCount int              `json:"intervalCount,omitempty"`
	MinCycles     *int             `json:"minCycles,omitempty"`
	Recurring     *RecurringPolicy `json:"recurring,omitempty"`
}

// RecurringPolicy — вложенная форма политики.
type RecurringPolicy struct {
	Interval      string `json:"interval"`
	IntervalCount int    `json:"intervalCount"`
	MinCycles     *int   `json:"minCycles,omitempty"`
}
