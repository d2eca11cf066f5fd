package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dash-demo/internal/domain"
	"dash-demo/internal/pipeline"
	"dash-demo/internal/render"
)

type drilldownResponse struct {
	State          *domain.DrilldownState `json:"state"`
	AnchorWidgetID string                 `json:"anchorWidgetId"`
	PanelRowSpan   int                    `json:"panelRowSpan"`
}

func (h *Handler) openDrilldown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PointLabel string `json:"pointLabel"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	state, err := h.dashboard.OpenDrilldown(chi.URLParam(r, "widgetID"), req.PointLabel)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drilldownResponse{
		State:          state,
		AnchorWidgetID: h.dashboard.DrilldownAnchorWidgetID(),
		PanelRowSpan:   pipeline.DrilldownPanelRowSpan(len(state.Rows)),
	})
}

func (h *Handler) closeDrilldown(w http.ResponseWriter, _ *http.Request) {
	h.dashboard.CloseDrilldown()
	w.WriteHeader(http.StatusNoContent)
}

// drilldownFragment returns the open drilldown panel as an HTML fragment.
func (h *Handler) drilldownFragment(w http.ResponseWriter, _ *http.Request) {
	state := h.dashboard.ActiveDrilldown()
	if state == nil {
		h.writeError(w, domain.ErrNotFound("no drilldown is open on the active page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.DrilldownPanel(state).Render(w); err != nil {
		h.logger.Error("render drilldown fragment", "error", err)
	}
}
