package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dash-demo/internal/domain"
	"dash-demo/internal/render"
	"dash-demo/internal/service/dashboard"
)

func (h *Handler) addWidget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind    string `json:"kind"`
		Dataset string `json:"dataset"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	var widget *domain.Widget
	switch req.Kind {
	case "chart":
		var err error
		widget, err = h.dashboard.AddChartWidget(req.Dataset)
		if err != nil {
			h.writeError(w, err)
			return
		}
	case "text":
		widget = h.dashboard.AddTextWidget()
	default:
		h.writeError(w, domain.ErrValidation("unknown widget kind %q", req.Kind))
		return
	}
	h.writeWidget(w, widget, http.StatusCreated)
}

func (h *Handler) removeWidget(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.RemoveWidget(chi.URLParam(r, "widgetID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateChart(w http.ResponseWriter, r *http.Request) {
	var req dashboard.UpdateChartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	widget, err := h.dashboard.UpdateChart(chi.URLParam(r, "widgetID"), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeWidget(w, widget, http.StatusOK)
}

func (h *Handler) updateText(w http.ResponseWriter, r *http.Request) {
	var req dashboard.UpdateTextRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	widget, err := h.dashboard.UpdateText(chi.URLParam(r, "widgetID"), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeWidget(w, widget, http.StatusOK)
}

func (h *Handler) saveWidget(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.SaveWidget(r.Context(), chi.URLParam(r, "widgetID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selectWidget(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.SelectWidget(chi.URLParam(r, "widgetID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) moveWidget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetID string `json:"targetId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.ReorderWidget(chi.URLParam(r, "widgetID"), req.TargetID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resizeWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "widgetID")
	var req struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.dashboard.ResizeWidget(id, req.Width, req.Height); err != nil {
		h.writeError(w, err)
		return
	}
	page := h.dashboard.CurrentPage()
	h.writeWidget(w, page.WidgetByID(id), http.StatusOK)
}

func (h *Handler) widgetData(w http.ResponseWriter, r *http.Request) {
	res, err := h.dashboard.Evaluate(chi.URLParam(r, "widgetID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// widgetFragment returns the widget rendered as an HTML fragment.
func (h *Handler) widgetFragment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "widgetID")
	page := h.dashboard.CurrentPage()
	widget := page.WidgetByID(id)
	if widget == nil {
		h.writeError(w, domain.ErrNotFound("widget %s not found on the active page", id))
		return
	}
	res, err := h.dashboard.Evaluate(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	node, err := render.Widget(widget, res)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(w); err != nil {
		h.logger.Error("render widget fragment", "widget_id", id, "error", err)
	}
}
