package middleware

import (
	"context"
	"net/http"
	"strings"

	"fortune_wheel/pkg/resp"
)

type ctxKey struct{}

// WithPlayerID кладет ID игрока в контекст
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, playerID)
}

// PlayerIDFromContext достает ID игрока, положенный Auth
func PlayerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

type Authenticator interface {
	Authenticate(accessToken string) (playerID string, err error)
}

// Auth проверяет Bearer access token и кладет ID игрока в контекст запроса
func Auth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			playerID, err := a.Authenticate(token)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPlayerID(r.Context(), playerID)))
		})
	}
}
