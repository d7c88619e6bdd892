package player

import (
	"net/http"

	"fortune_wheel/internal/api"
	dto "fortune_wheel/internal/api/dto/player"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/req"
	"fortune_wheel/pkg/resp"

	"golang.org/x/exp/slog"
)

type HandlerDeps struct {
	Serv service.PlayerService
	Log  *slog.Logger
}

type Handler struct {
	serv service.PlayerService
	log  *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// Register создает гостевого игрока и возвращает access_token
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "api.player.Register"

	payload, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		api.WriteDecodeError(w, err)
		return
	}

	data, err := h.serv.Register(r.Context(), payload.Name)
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToRegisterResponse(*data))
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	const op = "api.player.Profile"

	profile, err := h.serv.Profile(r.Context())
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProfileResponse(*profile))
}

func (h *Handler) ClaimDailyBonus(w http.ResponseWriter, r *http.Request) {
	const op = "api.player.ClaimDailyBonus"

	claim, err := h.serv.ClaimDailyBonus(r.Context())
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBonusClaimResponse(*claim))
}
