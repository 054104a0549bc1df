package shopify

import (
	"net/http"
	"regexp"
	"strings"
)

var nextLinkRe = regexp.MustCompile(`page_info=([^&>]+)>; rel="next"`)

// NextPageInfo извлекает курсор следующей страницы из заголовка Link
// ответа Admin REST API. Пустая строка означает, что следующей страницы нет.
func NextPageInfo(headers http.Header) string {
	link := strings.Join(headers.Values("Link"), ", ")
	match := nextLinkRe.FindStringSubmatch(link)
	if match == nil {
		return ""
	}
	return match[1]
}
