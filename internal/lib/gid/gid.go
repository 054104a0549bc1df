// Package gid реализует нормализацию идентификаторов сущностей Shopify.
//
// Admin GraphQL API принимает только глобальные идентификаторы вида
// gid://shopify/<Type>/<id>, в то время как клиенты обычно передают
// «сырые» числовые идентификаторы. Normalize приводит любой идентификатор
// к глобальной форме, не изменяя уже нормализованные значения.
package gid

import "strings"

// Prefix — общий префикс глобальных идентификаторов Shopify.
const Prefix = "gid://"

// Normalize возвращает глобальный идентификатор для сущности entityType.
//
// Пустой rawID возвращается без изменений: функция никогда не придумывает
// идентификатор. Уже нормализованный идентификатор также возвращается как
// есть, поэтому повторный вызов не меняет результат.
func Normalize(entityType, rawID string) string {
	if rawID == "" {
		return rawID
	}
	if strings.HasPrefix(rawID, Prefix) {
		return rawID
	}
	return "gid://shopify/" + entityType + "/" + rawID
}
