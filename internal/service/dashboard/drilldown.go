package dashboard

import (
	"strings"

	"dash-demo/internal/domain"
	"dash-demo/internal/layout"
	"dash-demo/internal/pipeline"
)

// OpenDrilldown opens the detail panel for a clicked chart point on the
// current page, replacing any previously open panel. The source widget must
// have a dimension and at least one measure bound.
func (s *Service) OpenDrilldown(widgetID, pointLabel string) (*domain.DrilldownState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := s.currentPage()
	w := page.WidgetByID(widgetID)
	if w == nil {
		return nil, domain.ErrNotFound("widget %s not found", widgetID)
	}
	if !w.IsChart() || w.Chart.Dimension == nil || len(w.Chart.Measures) == 0 {
		return nil, domain.ErrValidation("widget %s has no dimension and measure bound", widgetID)
	}

	c := w.Chart
	measureNames := make([]string, 0, len(c.Measures))
	for _, m := range c.Measures {
		measureNames = append(measureNames, m.Name)
	}

	state := &domain.DrilldownState{
		SourceWidgetID:   widgetID,
		SourceRow:        layout.RowOf(page.Widgets, widgetID),
		PointLabel:       pointLabel,
		DimensionLabel:   c.Dimension.Name,
		MeasureLabel:     strings.Join(measureNames, " / "),
		AggregationLabel: c.PrimaryAggregation(),
		Rows:             pipeline.DrilldownRows(c, pointLabel),
	}
	page.Drilldown = state
	return state, nil
}

// CloseDrilldown closes the current page's panel if one is open.
func (s *Service) CloseDrilldown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage().Drilldown = nil
}

// ActiveDrilldown returns the current page's open drilldown, or nil.
func (s *Service) ActiveDrilldown() *domain.DrilldownState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage().Drilldown
}

// DrilldownAnchorWidgetID returns the widget after which the panel renders:
// the last widget of the source's grid row. Empty when no panel is open.
func (s *Service) DrilldownAnchorWidgetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dd := s.currentPage().Drilldown
	if dd == nil {
		return ""
	}
	return layout.LastWidgetOfRow(s.currentPage().Widgets, dd.SourceRow)
}
