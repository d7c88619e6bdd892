package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type authenticator map[string]string

func (a authenticator) Authenticate(token string) (string, error) {
	id, ok := a[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return id, nil
}

func TestAuth(t *testing.T) {
	a := authenticator{"good": "player-1"}

	var gotID string
	handler := Auth(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = PlayerIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		want   int
		wantID string
	}{
		{name: "valid token", header: "Bearer good", want: http.StatusNoContent, wantID: "player-1"},
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", want: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID = ""

			r := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tc.want {
				t.Errorf("status: want %d, got %d", tc.want, w.Code)
			}
			if gotID != tc.wantID {
				t.Errorf("player id: want %q, got %q", tc.wantID, gotID)
			}
		})
	}
}
