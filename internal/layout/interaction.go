package layout

import (
	"math"

	"dash-demo/internal/domain"
)

// Point is a pointer position in canvas pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is a widget bounding box in canvas pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the rect midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

type dragState struct {
	widgetID string
	start    Point
	offset   Point
}

type resizeState struct {
	widget    *domain.Widget
	start     Point
	startCols int
	startRows int
	colWidth  float64
	rowHeight float64
}

// Session tracks the single active pointer interaction. At most one widget
// may be dragged or resized at a time across the whole dashboard.
type Session struct {
	drag   *dragState
	resize *resizeState
}

// Active reports whether a drag or resize is in progress.
func (s *Session) Active() bool {
	return s.drag != nil || s.resize != nil
}

// DraggingID returns the id of the widget being dragged, or "".
func (s *Session) DraggingID() string {
	if s.drag == nil {
		return ""
	}
	return s.drag.widgetID
}

// DragOffset returns the free-floating pixel offset of the dragged widget.
// The offset is purely visual and never feeds row computation.
func (s *Session) DragOffset() Point {
	if s.drag == nil {
		return Point{}
	}
	return s.drag.offset
}

// StartDrag begins dragging a widget from the given pointer position.
func (s *Session) StartDrag(widgetID string, pointer Point) error {
	if s.Active() {
		return domain.ErrConflict("another drag or resize is already active")
	}
	s.drag = &dragState{widgetID: widgetID, start: pointer}
	return nil
}

// StartResize begins resizing a widget. colWidth is the canvas width divided
// by the column count; rowHeight is the fixed row height in pixels.
func (s *Session) StartResize(w *domain.Widget, pointer Point, colWidth, rowHeight float64) error {
	if s.Active() {
		return domain.ErrConflict("another drag or resize is already active")
	}
	s.resize = &resizeState{
		widget:    w,
		start:     pointer,
		startCols: w.Placement.ColumnSpan,
		startRows: w.Placement.RowSpan,
		colWidth:  colWidth,
		rowHeight: rowHeight,
	}
	return nil
}

// PointerMove feeds a pointer position into the active interaction. Dragging
// updates the visual offset; resizing recomputes spans continuously so the
// row map reflects the resize in real time.
func (s *Session) PointerMove(pointer Point) {
	if s.drag != nil {
		s.drag.offset = Point{X: pointer.X - s.drag.start.X, Y: pointer.Y - s.drag.start.Y}
	}
	if s.resize != nil {
		r := s.resize
		if r.colWidth <= 0 || r.rowHeight <= 0 {
			return
		}
		dw := int(math.Round((pointer.X - r.start.X) / r.colWidth))
		dh := int(math.Round((pointer.Y - r.start.Y) / r.rowHeight))
		r.widget.SetColumnSpan(r.startCols + dw)
		r.widget.SetRowSpan(r.startRows + dh)
	}
}

// DropResult describes the outcome of ending a drag.
type DropResult struct {
	WidgetID  string
	TargetID  string
	Reordered bool
}

// EndDrag releases the drag at the given pointer position. The drop target
// is the widget whose bounding box contains the release point, falling back
// to the nearest widget by center distance. The dragged widget is spliced
// out of the page order and reinserted at the target's index; the visual
// offset snaps back to zero either way.
func (s *Session) EndDrag(page *domain.Page, release Point, bounds map[string]Rect) DropResult {
	if s.drag == nil {
		return DropResult{}
	}
	dragged := s.drag.widgetID
	s.drag = nil

	target := resolveDropTarget(dragged, release, bounds)
	res := DropResult{WidgetID: dragged, TargetID: target}
	if target != "" && target != dragged {
		res.Reordered = page.MoveWidget(dragged, target)
	}
	return res
}

// EndResize releases the resize, returning the widget that was resized. The
// last-computed spans stay applied; there is no revert on cancel.
func (s *Session) EndResize() *domain.Widget {
	if s.resize == nil {
		return nil
	}
	w := s.resize.widget
	s.resize = nil
	return w
}

func resolveDropTarget(dragged string, release Point, bounds map[string]Rect) string {
	for id, r := range bounds {
		if id != dragged && r.Contains(release) {
			return id
		}
	}
	best := ""
	bestDist := math.MaxFloat64
	for id, r := range bounds {
		if id == dragged {
			continue
		}
		c := r.Center()
		d := math.Hypot(c.X-release.X, c.Y-release.Y)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best
}
