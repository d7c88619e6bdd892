package api

import (
	"errors"
	"net/http"

	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/resp"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

var statuses = []struct {
	err    error
	status int
}{
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrInvalidName, http.StatusBadRequest},
	{service.ErrUnknownCategory, http.StatusBadRequest},
	{service.ErrPlayerNotFound, http.StatusNotFound},
	{service.ErrItemNotFound, http.StatusNotFound},
	{service.ErrNoSpin, http.StatusNotFound},
	{service.ErrNoPendingSpin, http.StatusNotFound},
	{service.ErrSpinInProgress, http.StatusConflict},
	{service.ErrBonusClaimed, http.StatusConflict},
	{service.ErrItemOwned, http.StatusConflict},
	{service.ErrInsufficientCoins, http.StatusPaymentRequired},
	{service.ErrItemUnavailable, http.StatusGone},
}

// Status код ответа для ошибки сервиса. Неизвестные ошибки считаются внутренними
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// WriteError пишет ошибку сервиса клиенту. Внутренние ошибки логируются, клиенту уходит общий текст
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		resp.WriteError(w, status, "internal error")
		return
	}

	// Наружу уходит исходная ошибка без цепочки op
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			resp.WriteError(w, status, s.err.Error())
			return
		}
	}
}

// WriteDecodeError ответ на некорректное тело запроса
func WriteDecodeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.WriteError(w, http.StatusBadRequest, resp.ValidationError(verrs))
		return
	}
	resp.WriteError(w, http.StatusBadRequest, err.Error())
}
