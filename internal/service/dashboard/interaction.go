package dashboard

import (
	"dash-demo/internal/domain"
	"dash-demo/internal/layout"
)

// StartDrag begins dragging a widget on the current page.
func (s *Service) StartDrag(id string, pointer layout.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage().WidgetByID(id) == nil {
		return domain.ErrNotFound("widget %s not found", id)
	}
	s.selectedID = id
	return s.session.StartDrag(id, pointer)
}

// StartResize begins resizing a widget on the current page.
func (s *Service) StartResize(id string, pointer layout.Point, colWidth, rowHeight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.currentPage().WidgetByID(id)
	if w == nil {
		return domain.ErrNotFound("widget %s not found", id)
	}
	return s.session.StartResize(w, pointer, colWidth, rowHeight)
}

// PointerMove feeds pointer motion into the active drag or resize.
func (s *Service) PointerMove(pointer layout.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.PointerMove(pointer)
}

// EndDrag drops the dragged widget, reordering toward the resolved target.
// A dropped chart is marked dirty whether or not the order changed, matching
// the release-always-dirties contract of the pointer model.
func (s *Service) EndDrag(release layout.Point, bounds map[string]layout.Rect) layout.DropResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.session.EndDrag(s.currentPage(), release, bounds)
	if w := s.currentPage().WidgetByID(res.WidgetID); w != nil && w.IsChart() {
		s.dirty[w.ID] = true
	}
	return res
}

// EndResize releases the active resize, keeping the last-computed spans.
func (s *Service) EndResize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.session.EndResize(); w != nil && w.IsChart() {
		s.dirty[w.ID] = true
	}
}
