// Package tokensign реализует подпись JWT токенов с произвольным набором claims.
//
// В отличие от классического maker'а с фиксированным секретом, здесь секрет,
// срок жизни и алгоритм приходят от вызывающей стороны: ручка /api/jwt/sign
// используется витриной как утилита подписи.
package tokensign

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL — срок жизни токена, если expiresIn не передан.
const DefaultTTL = time.Hour

// Sign подписывает payload секретом secret.
//
// expiresIn задаётся строкой в формате time.ParseDuration ("1h", "30m");
// пустая строка означает DefaultTTL. algorithm — имя HMAC-алгоритма
// (HS256, HS384, HS512), пустая строка означает HS256.
func Sign(payload map[string]any, secret, expiresIn, algorithm string) (string, error) {
	const op = "tokensign.Sign"

	ttl := DefaultTTL
	if expiresIn != "" {
		parsed, err := time.ParseDuration(expiresIn)
		if err != nil {
			return "", fmt.Errorf("%s: invalid expiresIn: %w", op, err)
		}
		ttl = parsed
	}

	if algorithm == "" {
		algorithm = "HS256"
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return "", fmt.Errorf("%s: unsupported algorithm %q", op, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("%s: algorithm %q is not an HMAC method", op, algorithm)
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	now := time.Now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}
