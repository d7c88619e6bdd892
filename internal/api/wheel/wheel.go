package wheel

import (
	"net/http"

	"fortune_wheel/internal/api"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/resp"

	"golang.org/x/exp/slog"
)

type HandlerDeps struct {
	Serv     service.WheelService
	Log      *slog.Logger
	SeedHash string // sha256 серверного сида, сам сид не раскрывается
}

type Handler struct {
	serv     service.WheelService
	log      *slog.Logger
	seedHash string
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log, seedHash: deps.SeedHash}
}

// Config сегменты колеса и длительность анимации
func (h *Handler) Config(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelResponse(h.serv.Config()))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

// Fairness данные для проверки вращений: клиентский сид это ID игрока, nonce приходит в ответе Spin
func (h *Handler) Fairness(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, dto.FairnessResponse{
		ServerSeedHash: h.seedHash,
		Algorithm:      "HMAC-SHA256(server_seed, player_id:nonce:round)",
	})
}

// Spin запускает вращение. Результат забирается через Result после reveal_at
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	const op = "api.wheel.Spin"

	spin, err := h.serv.Spin(r.Context())
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusAccepted, converter.ToSpinResponse(*spin))
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	const op = "api.wheel.Result"

	spin, err := h.serv.Result(r.Context())
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*spin))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const op = "api.wheel.Cancel"

	if err := h.serv.Cancel(r.Context()); err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
