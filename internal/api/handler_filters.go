package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dash-demo/internal/domain"
)

type filterColumnResponse struct {
	Column            string   `json:"column"`
	Options           []string `json:"options"`
	IneligibleWarning bool     `json:"ineligibleWarning"`
}

type filtersResponse struct {
	Filters []domain.PageFilter    `json:"filters"`
	Columns []filterColumnResponse `json:"columns"`
}

func (h *Handler) getFilters(w http.ResponseWriter, _ *http.Request) {
	resp := filtersResponse{Filters: h.dashboard.PageFilters()}
	for _, col := range h.dashboard.CommonFilterColumns() {
		resp.Columns = append(resp.Columns, filterColumnResponse{
			Column:            col,
			Options:           h.dashboard.FilterOptions(col),
			IneligibleWarning: h.dashboard.ShowIneligibleFilterWarning(col),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) setFilters(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filters []domain.PageFilter `json:"filters"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.SetFilters(req.Filters); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filters": h.dashboard.PageFilters()})
}

func (h *Handler) setFilterValue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.SetFilterValue(chi.URLParam(r, "column"), req.Value); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeFilter(w http.ResponseWriter, r *http.Request) {
	h.dashboard.RemoveFilter(chi.URLParam(r, "column"))
	w.WriteHeader(http.StatusNoContent)
}
