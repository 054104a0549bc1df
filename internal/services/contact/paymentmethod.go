// Package contact реализует операции с платёжными методами покупателей
// через Admin GraphQL API: инициализацию привязки карты, привязку по
// внешней ссылке и получение URL обновления метода оплаты.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/storefront-relay/internal/lib/gid"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// ErrNoRedirectURL возвращается, когда Shopify не вернул redirect URL
// для настройки платёжного метода.
var ErrNoRedirectURL = errors.New("Shopify did not return a redirect URL for payment method setup")

// ErrNoUpdateURL возвращается, когда для платёжного метода нет URL обновления.
var ErrNoUpdateURL = errors.New("no update URL returned for this payment method")

const remoteCreateSetupMutation = `
mutation customerPaymentMethodRemoteCreate($input: CustomerPaymentMethodRemoteCreateInput!) {
  customerPaymentMethodRemoteCreate(input: $input) {
    customerPaymentMethod {
      id
      status
    }
    setupIntent {
      id
      nextAction {
        redirectUrl
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const remoteLinkMutation = `
mutation customerPaymentMethodRemoteCreate($customerId: ID!, $remoteReference: CustomerPaymentMethodRemoteInput!, $billingAddress: MailingAddressInput, $test: Boolean) {
  customerPaymentMethodRemoteCreate(customerId: $customerId, remoteReference: $remoteReference, billingAddress: $billingAddress, test: $test) {
    customerPaymentMethod {
      id
      instrument {
        __typename
        ... on CustomerPaymentMethodCreditCard {
          brand
          lastDigits
          expMonth
          expYear
        }
        ... on CustomerPaymentMethodPaypalBillingAgreement {
          billingAgreementId
        }
      }
      billingAddress {
        address1
        city
        country
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const updateURLMutation = `
mutation customerPaymentMethodGetUpdateUrl($customerPaymentMethodId: ID!) {
  customerPaymentMethodGetUpdateUrl(customerPaymentMethodId: $customerPaymentMethodId) {
    updatePaymentMethodUrl
    userErrors {
      field
      message
    }
  }
}`

// GraphQLClient описывает интерфейс клиента Admin GraphQL API.
type GraphQLClient interface {
	Request(ctx context.Context, query string, variables map[string]any) (*shopify.GraphQLResponse, error)
}

// Service реализует бизнес-логику работы с платёжными методами покупателей.
type Service struct {
	gql GraphQLClient
	log *slog.Logger
}

// New создает новый Service.
func New(gql GraphQLClient, log *slog.Logger) *Service {
	return &Service{gql: gql, log: log}
}

// SetupRequest — параметры инициализации платёжного метода.
type SetupRequest struct {
	CustomerID         string
	PaymentMethod      map[string]any
	Origin             map[string]any
	SuccessRedirectURL string
	CancelRedirectURL  string
	Test               *bool
}

// SetupResult — результат инициализации: идентификатор setup intent
// и URL, на который витрина отправляет покупателя.
type SetupResult struct {
	SetupIntentID string
	RedirectURL   string
}

// CreateSetup инициирует привязку платёжного метода покупателя.
func (s *Service) CreateSetup(ctx context.Context, req SetupRequest) (*SetupResult, error) {
	paymentMethod := req.PaymentMethod
	if paymentMethod == nil {
		paymentMethod = map[string]any{"type": "CARD"}
	}
	origin := req.Origin
	if origin == nil {
		origin = map[string]any{"channel": "ONLINE_STORE"}
	}

	input := map[string]any{
		"customerId":    gid.Normalize("Customer", req.CustomerID),
		"paymentMethod": paymentMethod,
		"origin":        origin,
	}
	if req.SuccessRedirectURL != "" {
		input["successRedirectUrl"] = req.SuccessRedirectURL
	}
	if req.CancelRedirectURL != "" {
		input["cancelRedirectUrl"] = req.CancelRedirectURL
	}
	if req.Test != nil {
		input["test"] = *req.Test
	}

	resp, err := s.gql.Request(ctx, remoteCreateSetupMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	payload, err := resp.Payload("customerPaymentMethodRemoteCreate")
	if err != nil {
		return nil, err
	}
	var result struct {
		SetupIntent *struct {
			ID         string `json:"id"`
			NextAction *struct {
				RedirectURL string `json:"redirectUrl"`
			} `json:"nextAction"`
		} `json:"setupIntent"`
		UserErrors []shopify.UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode customerPaymentMethodRemoteCreate payload: %w", err)
	}
	if len(result.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Failed to initiate payment method setup",
			UserErrors: result.UserErrors,
		}
	}
	if result.SetupIntent == nil || result.SetupIntent.NextAction == nil ||
		result.SetupIntent.NextAction.RedirectURL == "" {
		return nil, ErrNoRedirectURL
	}

	s.log.Info("payment method setup initiated", slog.String("setup_intent_id", result.SetupIntent.ID))
	return &SetupResult{
		SetupIntentID: result.SetupIntent.ID,
		RedirectURL:   result.SetupIntent.NextAction.RedirectURL,
	}, nil
}

// LinkRequest — параметры привязки платёжного метода по внешней ссылке.
type LinkRequest struct {
	CustomerID      string
	RemoteReference map[string]any
	BillingAddress  map[string]any
	Test            *bool
}

// Link привязывает платёжный метод, созданный во внешнем платёжном сервисе.
func (s *Service) Link(ctx context.Context, req LinkRequest) (json.RawMessage, error) {
	variables := map[string]any{
		"customerId":      gid.Normalize("Customer", req.CustomerID),
		"remoteReference": req.RemoteReference,
	}
	if req.BillingAddress != nil {
		variables["billingAddress"] = req.BillingAddress
	}
	if req.Test != nil {
		variables["test"] = *req.Test
	}

	resp, err := s.gql.Request(ctx, remoteLinkMutation, variables)
	if err != nil {
		return nil, err
	}
	payload, err := resp.Payload("customerPaymentMethodRemoteCreate")
	if err != nil {
		return nil, err
	}
	var result struct {
		CustomerPaymentMethod json.RawMessage     `json:"customerPaymentMethod"`
		UserErrors            []shopify.UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode customerPaymentMethodRemoteCreate payload: %w", err)
	}
	if len(result.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Failed to link payment method",
			UserErrors: result.UserErrors,
		}
	}
	s.log.Info("payment method linked")
	return result.CustomerPaymentMethod, nil
}

// UpdateURL возвращает URL страницы обновления платёжного метода.
func (s *Service) UpdateURL(ctx context.Context, paymentMethodID string) (string, error) {
	resp, err := s.gql.Request(ctx, updateURLMutation, map[string]any{
		"customerPaymentMethodId": gid.Normalize("CustomerPaymentMethod", paymentMethodID),
	})
	if err != nil {
		return "", err
	}
	payload, err := resp.Payload("customerPaymentMethodGetUpdateUrl")
	if err != nil {
		return "", err
	}
	var result struct {
		UpdatePaymentMethodURL string              `json:"updatePaymentMethodUrl"`
		UserErrors             []shopify.UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("decode customerPaymentMethodGetUpdateUrl payload: %w", err)
	}
	if len(result.UserErrors) > 0 {
		return "", &shopify.UserErrorsError{
			Summary:    "Failed to retrieve payment method update URL",
			UserErrors: result.UserErrors,
		}
	}
	if result.UpdatePaymentMethodURL == "" {
		return "", ErrNoUpdateURL
	}
	return result.UpdatePaymentMethodURL, nil
}
