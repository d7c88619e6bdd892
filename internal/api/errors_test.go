package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/resp"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: service.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: fmt.Errorf("wheel.Spin: %w", service.ErrSpinInProgress), want: http.StatusConflict},
		{err: fmt.Errorf("shop.Purchase: %w", service.ErrInsufficientCoins), want: http.StatusPaymentRequired},
		{err: service.ErrItemUnavailable, want: http.StatusGone},
		{err: service.ErrNoSpin, want: http.StatusNotFound},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()

			if got := Status(tc.err); got != tc.want {
				t.Errorf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "domain error is unwrapped", err: fmt.Errorf("player.ClaimDailyBonus: %w", service.ErrBonusClaimed), wantMsg: service.ErrBonusClaimed.Error()},
		{name: "internal error is hidden", err: errors.New("pg: connection refused"), wantMsg: "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", nil)

			WriteError(w, r, sl.Discard(), "test", tc.err)

			var body resp.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tc.wantMsg || body.Status != w.Code {
				t.Errorf("unexpected body: %+v (code %d)", body, w.Code)
			}
		})
	}
}
