package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Spok95/kit-inventory/internal/report"
)

func (h *handler) exportStock(w http.ResponseWriter, r *http.Request) {
	all, _, err := h.svc.ListStock(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := report.StockWorkbook(all)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	attach(w, "stock", data)
}

func (h *handler) exportEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.SearchEmployees(r.Context(), "")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := report.EmployeesWorkbook(list)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	attach(w, "employees", data)
}

func attach(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, name, time.Now().Format("20060102_150405")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
