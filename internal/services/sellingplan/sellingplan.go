// Package sellingplan реализует операции с группами планов продаж
// (selling plan groups) через Admin GraphQL API.
package sellingplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/storefront-relay/internal/lib/gid"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// ErrNotFound возвращается, когда группа планов продаж не найдена.
var ErrNotFound = errors.New("selling plan group not found")

const groupFields = `
id
name
productVariants(first: 50) {
  edges {
    node {
      id
      title
      price
      sku
      product {
        id
        title
      }
    }
  }
}
sellingPlans(first: 10) {
  edges {
    node {
      id
      name
      description
      options
      pricingPolicies {
        ... on SellingPlanFixedPricingPolicy {
          adjustmentType
        }
        ... on SellingPlanRecurringPricingPolicy {
          adjustmentType
        }
      }
    }
  }
}`

var listQuery = fmt.Sprintf(`
query getSellingPlans($first: Int!, $after: String) {
  sellingPlanGroups(first: $first, after: $after) {
    edges {
      node {
        %s
      }
      cursor
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}`, groupFields)

var getQuery = fmt.Sprintf(`
query getSellingPlanGroup($id: ID!) {
  sellingPlanGroup(id: $id) {
    %s
    productVariantCount
  }
}`, groupFields)

const createMutation = `
mutation sellingPlanGroupCreate($input: SellingPlanGroupInput!, $resources: SellingPlanGroupResourceInput) {
  sellingPlanGroupCreate(input: $input, resources: $resources) {
    sellingPlanGroup {
      id
      name
      sellingPlans(first: 10) {
        edges {
          node {
            id
            name
            description
            options
            pricingPolicies {
              ... on SellingPlanFixedPricingPolicy {
                adjustmentType
              }
              ... on SellingPlanRecurringPricingPolicy {
                adjustmentType
              }
            }
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const deleteMutation = `
mutation sellingPlanGroupDelete($id: ID!) {
  sellingPlanGroupDelete(id: $id) {
    deletedSellingPlanGroupId
  }
}`

// GraphQLClient описывает интерфейс клиента Admin GraphQL API.
type GraphQLClient interface {
	Request(ctx context.Context, query string, variables map[string]any) (*shopify.GraphQLResponse, error)
}

// Service реализует бизнес-логику работы с группами планов продаж.
type Service struct {
	gql GraphQLClient
	log *slog.Logger
}

// New создает новый Service.
func New(gql GraphQLClient, log *slog.Logger) *Service {
	return &Service{gql: gql, log: log}
}

// PageInfo — сведения о курсорной странице GraphQL-ответа.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type connection struct {
	Edges []struct {
		Node   json.RawMessage `json:"node"`
		Cursor string          `json:"cursor"`
	} `json:"edges"`
	PageInfo PageInfo `json:"pageInfo"`
}

func (s *Service) listConnection(ctx context.Context, first int, after string) (*connection, error) {
	variables := map[string]any{"first": first}
	if after != "" {
		variables["after"] = after
	}
	resp, err := s.gql.Request(ctx, listQuery, variables)
	if err != nil {
		return nil, err
	}
	payload, err := resp.Payload("sellingPlanGroups")
	if err != nil {
		return nil, err
	}
	var conn connection
	if err := json.Unmarshal(payload, &conn); err != nil {
		return nil, fmt.Errorf("decode sellingPlanGroups payload: %w", err)
	}
	return &conn, nil
}

// ListGroups возвращает группы планов продаж (до 50), развёрнутые из edges.
func (s *Service) ListGroups(ctx context.Context) ([]json.RawMessage, error) {
	conn, err := s.listConnection(ctx, 50, "")
	if err != nil {
		return nil, err
	}
	groups := make([]json.RawMessage, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		groups = append(groups, edge.Node)
	}
	s.log.Info("fetched selling plan groups", slog.Int("count", len(groups)))
	return groups, nil
}

// PaginatedGroups — страница групп планов продаж с курсором продолжения.
type PaginatedGroups struct {
	Groups     []json.RawMessage
	PageInfo   PageInfo
	NextCursor *string
}

// ListGroupsPaginated возвращает страницу групп планов продаж.
// NextCursor заполняется только при наличии следующей страницы.
func (s *Service) ListGroupsPaginated(ctx context.Context, limit int, after string) (*PaginatedGroups, error) {
	if limit <= 0 {
		limit = 10
	}
	conn, err := s.listConnection(ctx, limit, after)
	if err != nil {
		return nil, err
	}
	page := &PaginatedGroups{
		Groups:   make([]json.RawMessage, 0, len(conn.Edges)),
		PageInfo: conn.PageInfo,
	}
	for _, edge := range conn.Edges {
		page.Groups = append(page.Groups, edge.Node)
	}
	if conn.PageInfo.HasNextPage {
		page.NextCursor = conn.PageInfo.EndCursor
	}
	return page, nil
}

// GetGroup возвращает группу планов продаж по идентификатору.
func (s *Service) GetGroup(ctx context.Context, id string) (json.RawMessage, error) {
	resp, err := s.gql.Request(ctx, getQuery, map[string]any{
		"id": gid.Normalize("SellingPlanGroup", id),
	})
	if err != nil {
		return nil, err
	}
	group, ok := resp.Data["sellingPlanGroup"]
	if !ok {
		return nil, &shopify.ProtocolError{Key: "sellingPlanGroup"}
	}
	if isNull(group) {
		return nil, ErrNotFound
	}
	return group, nil
}

// CreateGroup создаёт группу планов продаж. input и resources передаются
// в мутацию дословно из тела запроса витрины.
func (s *Service) CreateGroup(ctx context.Context, input, resources json.RawMessage) (json.RawMessage, error) {
	variables := map[string]any{"input": input}
	if len(resources) > 0 && !isNull(resources) {
		variables["resources"] = resources
	}
	resp, err := s.gql.Request(ctx, createMutation, variables)
	if err != nil {
		return nil, err
	}
	payload, err := resp.Payload("sellingPlanGroupCreate")
	if err != nil {
		return nil, err
	}
	var result struct {
		SellingPlanGroup json.RawMessage     `json:"sellingPlanGroup"`
		UserErrors       []shopify.UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode sellingPlanGroupCreate payload: %w", err)
	}
	if len(result.UserErrors) > 0 {
		return nil, &shopify.UserErrorsError{
			Summary:    "Selling plan group creation failed",
			UserErrors: result.UserErrors,
		}
	}
	s.log.Info("selling plan group created")
	return result.SellingPlanGroup, nil
}

// DeleteGroup удаляет группу планов продаж и возвращает идентификатор
// удалённой группы.
func (s *Service) DeleteGroup(ctx context.Context, id string) (string, error) {
	resp, err := s.gql.Request(ctx, deleteMutation, map[string]any{
		"id": gid.Normalize("SellingPlanGroup", id),
	})
	if err != nil {
		return "", err
	}
	payload, err := resp.Payload("sellingPlanGroupDelete")
	if err != nil {
		return "", err
	}
	var result struct {
		DeletedSellingPlanGroupID string `json:"deletedSellingPlanGroupId"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("decode sellingPlanGroupDelete payload: %w", err)
	}
	s.log.Info("selling plan group deleted", slog.String("id", result.DeletedSellingPlanGroupID))
	return result.DeletedSellingPlanGroupID, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
