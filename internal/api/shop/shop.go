package shop

import (
	"net/http"

	"fortune_wheel/internal/api"
	dto "fortune_wheel/internal/api/dto/shop"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/req"
	"fortune_wheel/pkg/resp"

	"golang.org/x/exp/slog"
)

type HandlerDeps struct {
	Serv service.ShopService
	Log  *slog.Logger
}

type Handler struct {
	serv service.ShopService
	log  *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// Items каталог магазина, ?category=all|powerup|cosmetic|premium
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	const op = "api.shop.Items"

	items, err := h.serv.Items(model.Category(r.URL.Query().Get("category")))
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToItemsResponse(items))
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	const op = "api.shop.Purchase"

	payload, err := req.Decode[dto.PurchaseRequest](r.Body)
	if err != nil {
		api.WriteDecodeError(w, err)
		return
	}

	result, err := h.serv.Purchase(r.Context(), payload.ItemID)
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPurchaseResponse(*result))
}

func (h *Handler) Purchases(w http.ResponseWriter, r *http.Request) {
	const op = "api.shop.Purchases"

	list, err := h.serv.Purchases(r.Context())
	if err != nil {
		api.WriteError(w, r, h.log, op, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPurchasesResponse(list))
}
