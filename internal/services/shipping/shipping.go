// Package shipping реализует операции с зонами доставки: чтение зон через
// Admin REST API и линейный подбор самого дешёвого тарифа по адресу.
package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"

	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// ErrNotFound возвращается, когда зона доставки не найдена.
var ErrNotFound = errors.New("shipping zone not found")

// RestClient описывает интерфейс клиента Admin REST API.
type RestClient interface {
	Get(ctx context.Context, path string, query url.Values) (*shopify.RestResponse, error)
}

// Service реализует бизнес-логику работы с зонами доставки.
type Service struct {
	rest RestClient
	log  *slog.Logger
}

// New создает новый Service.
func New(rest RestClient, log *slog.Logger) *Service {
	return &Service{rest: rest, log: log}
}

// ZonesResult — список зон доставки в исходном виде плюс их количество.
type ZonesResult struct {
	Zones []json.RawMessage
	Count int
}

// ListZones возвращает все зоны доставки магазина.
func (s *Service) ListZones(ctx context.Context) (*ZonesResult, error) {
	resp, err := s.rest.Get(ctx, "shipping_zones", nil)
	if err != nil {
		return nil, err
	}

	var zones []json.RawMessage
	if raw, ok := resp.Body["shipping_zones"]; ok {
		if err := json.Unmarshal(raw, &zones); err != nil {
			return nil, fmt.Errorf("decode shipping_zones: %w", err)
		}
	}
	s.log.Info("fetched shipping zones", slog.Int("count", len(zones)))
	return &ZonesResult{Zones: zones, Count: len(zones)}, nil
}

// GetZone возвращает зону доставки по идентификатору.
func (s *Service) GetZone(ctx context.Context, id string) (json.RawMessage, error) {
	resp, err := s.rest.Get(ctx, "shipping_zones/"+id, nil)
	if err != nil {
		return nil, err
	}
	zone, ok := resp.Body["shipping_zone"]
	if !ok || string(zone) == "null" {
		return nil, ErrNotFound
	}
	return zone, nil
}

// RateResult — результат расчёта доставки. При отсутствии подходящей зоны
// или тарифов Rate пуст, а Message объясняет причину.
type RateResult struct {
	Rate     *models.ShippingRate
	Price    float64
	Currency string
	ZoneID   int64
	ZoneName string
	Message  string
}

// CalculateRate подбирает самый дешёвый тариф доставки для адреса.
//
// Зоны загружаются целиком, после чего выполняется линейный проход:
// сначала ищется зона, покрывающая страну (и регион, если указан), затем
// среди тарифов зоны, страны и региона выбирается минимальная цена.
func (s *Service) CalculateRate(ctx context.Context, req models.ShippingRateRequest) (*RateResult, error) {
	resp, err := s.rest.Get(ctx, "shipping_zones", nil)
	if err != nil {
		return nil, err
	}

	var zones []models.ShippingZone
	if raw, ok := resp.Body["shipping_zones"]; ok {
		if err := json.Unmarshal(raw, &zones); err != nil {
			return nil, fmt.Errorf("decode shipping_zones: %w", err)
		}
	}
	if len(zones) == 0 {
		return &RateResult{Message: "No shipping zones found"}, nil
	}

	zone := matchZone(zones, req.CountryCode, req.ProvinceCode)
	if zone == nil {
		return &RateResult{Message: "No matching shipping zone found for the provided address"}, nil
	}

	rate, price := cheapestRate(zone, req.CountryCode, req.ProvinceCode)
	if rate == nil {
		return &RateResult{Message: "No shipping rates found in matching zone"}, nil
	}

	currency := "USD"
	if len(zone.Countries) > 0 && zone.Countries[0].Code != "" {
		currency = zone.Countries[0].Code
	}

	s.log.Info("calculated shipping rate",
		slog.String("country", req.CountryCode),
		slog.Float64("price", price),
		slog.Int64("zone_id", zone.ID))

	return &RateResult{
		Rate:     rate,
		Price:    price,
		Currency: currency,
		ZoneID:   zone.ID,
		ZoneName: zone.Name,
	}, nil
}

// matchZone ищет зону, покрывающую страну countryCode и, если указан,
// регион provinceCode.
func matchZone(zones []models.ShippingZone, countryCode, provinceCode string) *models.ShippingZone {
	for i := range zones {
		for _, country := range zones[i].Countries {
			if country.Code != countryCode {
				continue
			}
			if provinceCode != "" && len(country.Provinces) > 0 {
				for _, province := range country.Provinces {
					if province.Code == provinceCode {
						return &zones[i]
					}
				}
				continue
			}
			return &zones[i]
		}
	}
	return nil
}

// cheapestRate сканирует ценовые и весовые тарифы зоны, страны и региона
// и возвращает тариф с минимальной ценой.
func cheapestRate(zone *models.ShippingZone, countryCode, provinceCode string) (*models.ShippingRate, float64) {
	var cheapest *models.ShippingRate
	cheapestPrice := math.Inf(1)

	scan := func(rates []models.ShippingRate) {
		for i := range rates {
			if rates[i].Price < cheapestPrice {
				cheapestPrice = rates[i].Price
				cheapest = &rates[i]
			}
		}
	}

	scan(zone.PriceBasedShippingRates)
	scan(zone.WeightBasedShippingRates)

	for _, country := range zone.Countries {
		if country.Code != countryCode {
			continue
		}
		scan(country.PriceBasedShippingRates)
		scan(country.WeightBasedShippingRates)

		if provinceCode == "" {
			continue
		}
		for _, province := range country.Provinces {
			if province.Code != provinceCode {
				continue
			}
			scan(province.PriceBasedShippingRates)
			scan(province.WeightBasedShippingRates)
		}
	}

	if cheapest == nil {
		return nil, 0
	}
	return cheapest, cheapestPrice
}
