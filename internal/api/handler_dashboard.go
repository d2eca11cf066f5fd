package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dash-demo/internal/domain"
	"dash-demo/internal/layout"
)

type pageResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Active  bool             `json:"active"`
	Widgets []widgetResponse `json:"widgets"`
}

type dashboardResponse struct {
	Name              string              `json:"name"`
	EditMode          bool                `json:"editMode"`
	HasUnsavedChanges bool                `json:"hasUnsavedChanges"`
	DirtyWidgetIDs    []string            `json:"dirtyWidgetIds"`
	SelectedWidgetID  string              `json:"selectedWidgetId,omitempty"`
	CurrentPageID     string              `json:"currentPageId"`
	Pages             []pageResponse      `json:"pages"`
	Filters           []domain.PageFilter `json:"filters"`
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	current := h.dashboard.CurrentPage()

	doc := h.dashboard.Document()
	resp := dashboardResponse{
		Name:              h.dashboard.Name(),
		EditMode:          h.dashboard.EditMode(),
		HasUnsavedChanges: h.dashboard.HasUnsavedChanges(),
		DirtyWidgetIDs:    h.dashboard.DirtyWidgetIDs(),
		SelectedWidgetID:  h.dashboard.SelectedWidgetID(),
		CurrentPageID:     current.ID,
		Filters:           h.dashboard.PageFilters(),
	}

	for _, pd := range doc.Pages {
		page := h.dashboard.PageByID(pd.ID)
		if page == nil {
			continue
		}
		pr := pageResponse{ID: page.ID, Name: page.Name, Active: page.ID == current.ID}
		// Rows pack per page; the current page's map says nothing about
		// widgets elsewhere.
		rows := layout.RowMap(page.Widgets)
		for _, widget := range page.Widgets {
			wr, err := h.widgetToAPI(widget, rows)
			if err != nil {
				h.writeError(w, err)
				return
			}
			pr.Widgets = append(pr.Widgets, wr)
		}
		resp.Pages = append(resp.Pages, pr)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) renameDashboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.Rename(req.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveDashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Save(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) closeEditor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SaveChanges bool `json:"saveChanges"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.CloseEditor(r.Context(), req.SaveChanges); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type datasetResponse struct {
	Name   string         `json:"name"`
	Fields []fieldResponse `json:"fields"`
}

type fieldResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (h *Handler) getCatalog(w http.ResponseWriter, _ *http.Request) {
	var datasets []datasetResponse
	for _, name := range h.catalog.DatasetNames() {
		ds := datasetResponse{Name: name}
		for _, f := range h.catalog.Fields(name) {
			ds.Fields = append(ds.Fields, fieldResponse{ID: f.ID, Name: f.Name, Kind: f.Kind})
		}
		datasets = append(datasets, ds)
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": datasets})
}

func (h *Handler) addPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	page, err := h.dashboard.AddPage(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pageResponse{ID: page.ID, Name: page.Name})
}

func (h *Handler) activatePage(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.ActivatePage(chi.URLParam(r, "pageID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
