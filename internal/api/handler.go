// Package api provides the HTTP handlers for the dashboard REST API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dash-demo/internal/catalog"
	"dash-demo/internal/domain"
	"dash-demo/internal/service/dashboard"
)

// Handler serves the dashboard API over the dashboard service.
type Handler struct {
	dashboard *dashboard.Service
	catalog   *catalog.Catalog
	logger    *slog.Logger
}

// NewHandler creates the handler with its service dependencies.
func NewHandler(svc *dashboard.Service, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{dashboard: svc, catalog: cat, logger: logger}
}

// Routes mounts all API endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.getDashboard)
	r.Put("/dashboard", h.renameDashboard)
	r.Post("/dashboard/save", h.saveDashboard)
	r.Post("/dashboard/close", h.closeEditor)

	r.Get("/catalog", h.getCatalog)

	r.Post("/pages", h.addPage)
	r.Post("/pages/{pageID}/activate", h.activatePage)

	r.Post("/widgets", h.addWidget)
	r.Delete("/widgets/{widgetID}", h.removeWidget)
	r.Patch("/widgets/{widgetID}/chart", h.updateChart)
	r.Patch("/widgets/{widgetID}/text", h.updateText)
	r.Post("/widgets/{widgetID}/save", h.saveWidget)
	r.Post("/widgets/{widgetID}/select", h.selectWidget)
	r.Post("/widgets/{widgetID}/move", h.moveWidget)
	r.Post("/widgets/{widgetID}/resize", h.resizeWidget)
	r.Get("/widgets/{widgetID}/data", h.widgetData)
	r.Get("/widgets/{widgetID}/fragment", h.widgetFragment)

	r.Post("/widgets/{widgetID}/drilldown", h.openDrilldown)
	r.Delete("/drilldown", h.closeDrilldown)
	r.Get("/drilldown/fragment", h.drilldownFragment)

	r.Get("/filters", h.getFilters)
	r.Put("/filters", h.setFilters)
	r.Put("/filters/{column}", h.setFilterValue)
	r.Delete("/filters/{column}", h.removeFilter)
}

// widgetResponse is the API view of one widget. Chart bindings travel as the
// name-based save payload so the shape matches what persists.
type widgetResponse struct {
	ID    string                   `json:"id"`
	Kind  string                   `json:"kind"`
	Row   int                      `json:"row"`
	Dirty bool                     `json:"dirty"`
	Chart *domain.ChartSavePayload `json:"chart,omitempty"`
	Text  *domain.TextSavePayload  `json:"text,omitempty"`
}

func (h *Handler) widgetToAPI(w *domain.Widget, rows map[string]int) (widgetResponse, error) {
	resp := widgetResponse{ID: w.ID, Row: rows[w.ID], Dirty: h.dashboard.IsDirty(w.ID)}
	if w.IsChart() {
		payload, err := domain.BuildChartPayload(w)
		if err != nil {
			return widgetResponse{}, err
		}
		resp.Kind = "chart"
		resp.Chart = payload
		return resp, nil
	}
	payload, err := domain.BuildTextPayload(w)
	if err != nil {
		return widgetResponse{}, err
	}
	resp.Kind = "text"
	resp.Text = payload
	return resp, nil
}

func (h *Handler) writeWidget(w http.ResponseWriter, widget *domain.Widget, status int) {
	resp, err := h.widgetToAPI(widget, h.dashboard.RowMap())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}
