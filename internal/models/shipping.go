package models

import (
	"encoding/json"
	"strconv"
)

// ShippingRateRequest — запрос расчёта стоимости доставки по адресу.
type ShippingRateRequest struct {
	CountryCode  string `json:"countryCode" validate:"required"`
	ProvinceCode string `json:"provinceCode"`
	Zip          string `json:"zip"`
}

// ShippingZone — зона доставки из Admin REST API. Разбираются только поля,
// нужные для подбора зоны и тарифа; остальное relay не интерпретирует.
type ShippingZone struct {
	ID                       int64             `json:"id"`
	Name                     string            `json:"name"`
	Countries                []ShippingCountry `json:"countries"`
	PriceBasedShippingRates  []ShippingRate    `json:"price_based_shipping_rates"`
	WeightBasedShippingRates []ShippingRate    `json:"weight_based_shipping_rates"`
}

// ShippingCountry — страна внутри зоны доставки.
type ShippingCountry struct {
	Code                     string             `json:"code"`
	Provinces                []ShippingProvince `json:"provinces"`
	PriceBasedShippingRates  []ShippingRate     `json:"price_based_shipping_rates"`
	WeightBasedShippingRates []ShippingRate     `json:"weight_based_shipping_rates"`
}

// ShippingProvince — регион внутри страны.
type ShippingProvince struct {
	Code                     string         `json:"code"`
	PriceBasedShippingRates  []ShippingRate `json:"price_based_shipping_rates"`
	WeightBasedShippingRates []ShippingRate `json:"weight_based_shipping_rates"`
}

// ShippingRate — тариф доставки. Сам тариф отдаётся клиенту дословно (Raw),
// для сравнения используется только цена.
type ShippingRate struct {
	Price float64
	Raw   json.RawMessage
}

// UnmarshalJSON сохраняет исходный JSON тарифа и извлекает цену.
// Shopify присылает цену строкой; нечисловое или отсутствующее значение
// трактуется как 0, как и при ручном parseFloat на витрине.
func (r *ShippingRate) UnmarshalJSON(b []byte) error {
	r.Raw = append(r.Raw[:0], b...)
	var aux struct {
		Price any `json:"price"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch v := aux.Price.(type) {
	case string:
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			price = 0
		}
		r.Price = price
	case float64:
		r.Price = v
	default:
		r.Price = 0
	}
	return nil
}

// MarshalJSON возвращает тариф в исходном виде.
func (r ShippingRate) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}
