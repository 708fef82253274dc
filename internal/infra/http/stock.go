package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

func (h *handler) listStock(w http.ResponseWriter, r *http.Request) {
	all, low, err := h.svc.ListStock(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stock_items":     all,
		"low_stock_items": stock.LowStockOf(low),
	})
}

func (h *handler) getStock(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.GetStock(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *handler) createStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemName    *string `json:"item_name"`
		Quantity    *int    `json:"quantity"`
		DangerLevel *int    `json:"danger_level"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ItemName == nil || req.Quantity == nil || req.DangerLevel == nil {
		badRequest(w, "item_name, quantity, and danger_level are required")
		return
	}

	it, err := h.svc.CreateStock(r.Context(), stock.Item{
		Name:        *req.ItemName,
		Quantity:    *req.Quantity,
		DangerLevel: *req.DangerLevel,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var u stock.Update
	if !decode(w, r, &u) {
		return
	}
	it, err := h.svc.UpdateStock(r.Context(), chi.URLParam(r, "name"), u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *handler) addStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		badRequest(w, "Quantity is required")
		return
	}
	it, err := h.svc.AddQuantity(r.Context(), chi.URLParam(r, "name"), *req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteStock(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted successfully")
}

func (h *handler) checkLowStock(w http.ResponseWriter, r *http.Request) {
	low, err := h.svc.CheckLowStock(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(low) == 0 {
		writeMessage(w, http.StatusOK, "No low stock items found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Low stock alert sent",
		"low_stock_items": stock.LowStockOf(low),
	})
}
