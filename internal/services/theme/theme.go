// Package theme реализует чтение тем магазина и их конфигурации:
// список и карточки тем через Admin REST API, настройки опубликованной темы
// и извлечение цветовой схемы из settings_data.json через GraphQL.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/magabrotheeeer/storefront-relay/internal/lib/gid"
	"github.com/magabrotheeeer/storefront-relay/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

// ErrNotFound возвращается, когда тема или её конфигурация не найдены.
var ErrNotFound = errors.New("theme not found")

const themeByIDQuery = `
query getTheme($id: ID!) {
  theme(id: $id) {
    id
    name
    role
    createdAt
    updatedAt
  }
}`

const publishedThemeQuery = `
query getPublishedTheme {
  themes(first: 1, query: "role:main") {
    edges {
      node {
        id
        name
        role
        createdAt
        updatedAt
      }
    }
  }
}`

const allConfigsQuery = `
query getAllThemes {
  themes(first: 10, roles: [MAIN]) {
    edges {
      node {
        id
        name
        role
        createdAt
        updatedAt
        files(first: 300, filenames: ["*settings_data.json"]) {
          edges {
            node {
              filename
              body {
                ... on OnlineStoreThemeFileBodyText {
                  content
                }
              }
              contentType
            }
          }
        }
      }
    }
  }
}`

const assetURLQuery = `
query getAssetUrl($themeId: ID!, $assetKey: String!) {
  theme(id: $themeId) {
    asset(key: $assetKey) {
      publicUrl
    }
  }
}`

// RestClient описывает интерфейс клиента Admin REST API.
type RestClient interface {
	Get(ctx context.Context, path string, query url.Values) (*shopify.RestResponse, error)
}

// GraphQLClient описывает интерфейс клиента Admin GraphQL API.
type GraphQLClient interface {
	Request(ctx context.Context, query string, variables map[string]any) (*shopify.GraphQLResponse, error)
}

// Service реализует бизнес-логику работы с темами магазина.
type Service struct {
	rest RestClient
	gql  GraphQLClient
	log  *slog.Logger
}

// New создает новый Service.
func New(rest RestClient, gql GraphQLClient, log *slog.Logger) *Service {
	return &Service{rest: rest, gql: gql, log: log}
}

// ListThemes возвращает все темы магазина.
func (s *Service) ListThemes(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := s.rest.Get(ctx, "themes", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch themes: %w", err)
	}
	var themes []json.RawMessage
	if raw, ok := resp.Body["themes"]; ok {
		if err := json.Unmarshal(raw, &themes); err != nil {
			return nil, fmt.Errorf("decode themes: %w", err)
		}
	}
	return themes, nil
}

// GetTheme возвращает тему по идентификатору.
func (s *Service) GetTheme(ctx context.Context, id string) (json.RawMessage, error) {
	resp, err := s.rest.Get(ctx, "themes/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch theme %s: %w", id, err)
	}
	theme, ok := resp.Body["theme"]
	if !ok || string(theme) == "null" {
		return nil, ErrNotFound
	}
	return theme, nil
}

// GetConfig возвращает конфигурацию темы themeID; при пустом themeID —
// конфигурацию опубликованной темы.
func (s *Service) GetConfig(ctx context.Context, themeID string) (json.RawMessage, error) {
	if themeID != "" {
		resp, err := s.gql.Request(ctx, themeByIDQuery, map[string]any{
			"id": gid.Normalize("OnlineStoreTheme", themeID),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch theme config: %w", err)
		}
		theme, ok := resp.Data["theme"]
		if !ok || string(theme) == "null" {
			return nil, ErrNotFound
		}
		return theme, nil
	}

	resp, err := s.gql.Request(ctx, publishedThemeQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch theme config: %w", err)
	}
	payload, err := resp.Payload("themes")
	if err != nil {
		return nil, err
	}
	var conn struct {
		Edges []struct {
			Node json.RawMessage `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(payload, &conn); err != nil {
		return nil, fmt.Errorf("decode themes payload: %w", err)
	}
	if len(conn.Edges) == 0 {
		return nil, ErrNotFound
	}
	return conn.Edges[0].Node, nil
}

// Config — тема с извлечённой из settings_data.json цветовой схемой.
// Colors равен nil, если настройки не распарсились: одна сломанная тема
// не должна ронять весь список.
type Config struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	Colors    map[string]any `json:"colors"`
}

type themeNode struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Files     struct {
		Edges []struct {
			Node struct {
				Filename string `json:"filename"`
				Body     struct {
					Content string `json:"content"`
				} `json:"body"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"files"`
}

// ListConfigs возвращает основные темы магазина вместе с их настройками.
func (s *Service) ListConfigs(ctx context.Context) ([]Config, error) {
	resp, err := s.gql.Request(ctx, allConfigsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all theme configs: %w", err)
	}
	payload, err := resp.Payload("themes")
	if err != nil {
		return nil, err
	}
	var conn struct {
		Edges []struct {
			Node themeNode `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(payload, &conn); err != nil {
		return nil, fmt.Errorf("decode themes payload: %w", err)
	}

	configs := make([]Config, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		node := edge.Node
		cfg := Config{
			ID:        node.ID,
			Name:      node.Name,
			Role:      node.Role,
			CreatedAt: node.CreatedAt,
			UpdatedAt: node.UpdatedAt,
		}
		for _, file := range node.Files.Edges {
			if !strings.HasSuffix(file.Node.Filename, "settings_data.json") {
				continue
			}
			cfg.Colors = s.extractColors(ctx, node.ID, file.Node.Body.Content)
			break
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// commentRe вырезает комментарии /* ... */, которыми Shopify предваряет
// settings_data.json.
var commentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// extractColors разбирает содержимое settings_data.json. Ошибка разбора
// даёт nil. Логотип вида shopify://shop_images/... заменяется на публичный
// URL ресурса; неудача подстановки оставляет исходное значение.
func (s *Service) extractColors(ctx context.Context, themeID, content string) map[string]any {
	content = strings.TrimSpace(commentRe.ReplaceAllString(content, ""))
	if content == "" {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}

	current, ok := parsed["current"].(map[string]any)
	if !ok {
		return parsed
	}
	logo, ok := current["logo"].(string)
	if !ok || logo == "" {
		return parsed
	}

	publicURL, err := s.assetURL(ctx, themeID, logo)
	if err != nil {
		s.log.Warn("failed to resolve theme logo url",
			slog.String("theme_id", themeID), sl.Err(err))
		return parsed
	}
	current["logo"] = publicURL
	return parsed
}

var shopImageRe = regexp.MustCompile(`^shopify://shop_images/(.+)$`)

// assetURL возвращает публичный URL ресурса темы по ссылке вида
// shopify://shop_images/<filename>.
func (s *Service) assetURL(ctx context.Context, themeID, shopifyURL string) (string, error) {
	match := shopImageRe.FindStringSubmatch(shopifyURL)
	if match == nil {
		return "", fmt.Errorf("invalid Shopify URL format: %s", shopifyURL)
	}
	assetKey := "assets/" + match[1]

	resp, err := s.gql.Request(ctx, assetURLQuery, map[string]any{
		"themeId":  themeID,
		"assetKey": assetKey,
	})
	if err != nil {
		return "", err
	}
	payload, err := resp.Payload("theme")
	if err != nil {
		return "", err
	}
	var result struct {
		Asset *struct {
			PublicURL string `json:"publicUrl"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("decode theme asset payload: %w", err)
	}
	if result.Asset == nil || result.Asset.PublicURL == "" {
		return "", errors.New("asset not found or missing permissions")
	}
	return result.Asset.PublicURL, nil
}
