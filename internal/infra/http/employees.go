package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
)

func (h *handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.SearchEmployees(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var raw employees.Raw
	if !decode(w, r, &raw) || !nonEmpty(w, raw) {
		return
	}
	e, err := employees.ParseNew(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.CreateEmployee(r.Context(), e)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// updateEmployee сначала ищет сотрудника: на неизвестный id - 404, что бы ни пришло в теле.
func (h *handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.svc.GetEmployee(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	var raw employees.Raw
	if !decode(w, r, &raw) || !nonEmpty(w, raw) {
		return
	}
	u, err := employees.ParseUpdate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.UpdateEmployee(r.Context(), id, u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Employee deleted successfully")
}

func (h *handler) employeeStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.EmployeeStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func nonEmpty(w http.ResponseWriter, raw employees.Raw) bool {
	if len(raw) == 0 {
		badRequest(w, "No data provided")
		return false
	}
	return true
}
