package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/storefront-relay/internal/models"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

const atomicCreateMutation = `
mutation subscriptionContractAtomicCreate($input: SubscriptionContractAtomicCreateInput!) {
  subscriptionContractAtomicCreate(input: $input) {
    contract {
      id
      status
      customer {
        id
      }
      lines(first: 10) {
        nodes {
          id
          quantity
          productId
          variantId
          variantTitle
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const draftCreateMutation = `
mutation subscriptionContractCreate($input: SubscriptionContractCreateInput!) {
  subscriptionContractCreate(input: $input) {
    draft {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

const draftLineAddMutation = `
mutation subscriptionDraftLineAdd($draftId: ID!, $input: SubscriptionLineInput!) {
  subscriptionDraftLineAdd(draftId: $draftId, input: $input) {
    lineAdded {
      id
      quantity
    }
    userErrors {
      field
      message
    }
  }
}`

const draftCommitMutation = `
mutation subscriptionDraftCommit($draftId: ID!) {
  subscriptionDraftCommit(draftId: $draftId) {
    contract {
      id
      status
      customer {
        id
      }
      lines(first: 10) {
        nodes {
          id
          quantity
          productId
          variantId
          variantTitle
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// LineAddError — бизнес-отказ на шаге добавления строки в draft.
// Сохраняет variantId отказавшей строки: откат уже добавленных строк не
// выполняется, и клиенту нужно знать, на чём остановилась последовательность.
type LineAddError struct {
	VariantID  string
	UserErrors []shopify.UserError
}

func (e *LineAddError) Error() string {
	return fmt.Sprintf("failed to add subscription line for variant %s", e.VariantID)
}

// GraphQLClient описывает интерфейс клиента Admin GraphQL API.
type GraphQLClient interface {
	Request(ctx context.Context, query string, variables map[string]any) (*shopify.GraphQLResponse, error)
}

// Service оркестрирует создание контрактов подписки.
type Service struct {
	gql GraphQLClient
	log *slog.Logger
}

// New создает новый Service с переданными клиентом GraphQL и логгером.
func New(gql GraphQLClient, log *slog.Logger) *Service {
	return &Service{gql: gql, log: log}
}

// CreateResult — результат создания контракта.
type CreateResult struct {
	Contract json.RawMessage // Созданный контракт, дословно из ответа Shopify
	DraftID  string          // Идентификатор draft'а, только для draft-пути
}

// Create создаёт контракт подписки для запроса req.
//
// Сначала собирается вход: ошибки валидации возвращаются без единого
// сетевого вызова. Затем выполняется либо атомарная мутация, либо
// draft/commit-последовательность, если запрошен req.UseDraft.
func (s *Service) Create(ctx context.Context, req models.SubscriptionRequest) (*CreateResult, error) {
	input, err := BuildInput(req)
	if err != nil {
		return nil, err
	}
	if req.UseDraft {
		return s.createWithDraft(ctx, req, input)
	}
	return s.createAtomic(ctx, input)
}

type mutationResult struct {
	Contract json.RawMessage `json:"contract"`
	Draft    *struct {
		ID string `json:"id"`
	} `json:"draft"`
	UserErrors []shopify.UserError `json:"userErrors"`
}

func (s *Service) mutate(ctx context.Context, key, query string, variables map[string]any) (*mutationResult, error) {
	resp, err := s.gql.Request(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	payload, err := resp.Payload(key)
	if err != nil {
		return nil, err
	}
	var result mutationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", key, err)
	}
	return &result, nil
}

// createAtomic выполняет один вызов subscriptionContractAtomicCreate
// с полным входом: все под-шаги Shopify выполняет на своей стороне.
func (s *Service) createAtomic(ctx context.Context, input *Input) (*CreateResult, error) {
	s.log.Info("creating subscription contract atomically",
		slog.String("customer_id", input.CustomerID),
		slog.Int("lines", len(input.Lines)))

	result, err := s.mutate(ctx, "subscriptionContractAtomicCreate", atomicCreateMutation,
		map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	if len(result.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Failed to create subscription contract",
			UserErrors: result.UserErrors,
		}
	}
	return &CreateResult{Contract: result.Contract}, nil
}

// createWithDraft выполняет последовательность draft → add-lines → commit.
//
// Шаги строго последовательны: вход каждого зависит от результата
// предыдущего, а draft — одиночный изменяемый ресурс на стороне Shopify.
// Повторов и компенсации нет: отказ после первого шага оставляет в магазине
// осиротевший draft, его идентификатор возвращается клиенту для ручной
// очистки и инспекции.
func (s *Service) createWithDraft(ctx context.Context, req models.SubscriptionRequest, input *Input) (*CreateResult, error) {
	s.log.Info("creating subscription contract via draft",
		slog.String("customer_id", input.CustomerID),
		slog.Int("lines", len(input.Lines)))

	draftInput := map[string]any{
		"customerId":   input.CustomerID,
		"currencyCode": input.CurrencyCode,
		"contract":     input.Contract,
	}
	if input.NextBillingDate != "" {
		draftInput["nextBillingDate"] = input.NextBillingDate
	}

	created, err := s.mutate(ctx, "subscriptionContractCreate", draftCreateMutation,
		map[string]any{"input": draftInput})
	if err != nil {
		return nil, err
	}
	if len(created.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Failed to create subscription draft",
			UserErrors: created.UserErrors,
		}
	}
	if created.Draft == nil || created.Draft.ID == "" {
		return nil, &shopify.ProtocolError{Key: "subscriptionContractCreate.draft"}
	}
	draftID := created.Draft.ID
	s.log.Info("subscription draft created", slog.String("draft_id", draftID))

	for i, wrapper := range input.Lines {
		added, err := s.mutate(ctx, "subscriptionDraftLineAdd", draftLineAddMutation,
			map[string]any{"draftId": draftID, "input": wrapper.Line})
		if err != nil {
			return nil, err
		}
		if len(added.UserErrors) > 0 {
			return nil, &LineAddError{
				VariantID:  req.Lines[i].VariantID,
				UserErrors: added.UserErrors,
			}
		}
	}

	committed, err := s.mutate(ctx, "subscriptionDraftCommit", draftCommitMutation,
		map[string]any{"draftId": draftID})
	if err != nil {
		return nil, err
	}
	if len(committed.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Failed to commit subscription draft",
			UserErrors: committed.UserErrors,
		}
	}

	s.log.Info("subscription draft committed", slog.String("draft_id", draftID))
	return &CreateResult{Contract: committed.Contract, DraftID: draftID}, nil
}
