package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims is what the client reads out of its own access token.
// 署名検証はしない（シークレットはサーバーのみが持つ）。
// 期限切れ判定とロール表示のためのpeekに限る。
type TokenClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// PeekClaims parses the access token without verifying the signature.
func PeekClaims(token string) (TokenClaims, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, false
	}

	out := TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.UserID = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, true
}

// Expired reports whether the token is past its exp claim.
// expが読めないトークンは期限切れ扱いにしない（サーバーの401に任せる）。
func (c TokenClaims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
