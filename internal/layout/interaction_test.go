package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dash-demo/internal/domain"
)

func testPage(n int) (*domain.Page, []*domain.Widget) {
	p := domain.NewPage("Page 1")
	ws := make([]*domain.Widget, 0, n)
	for i := 0; i < n; i++ {
		w := domain.NewTextWidget()
		p.Widgets = append(p.Widgets, w)
		ws = append(ws, w)
	}
	return p, ws
}

func TestSession_DragOffsetAndSnapBack(t *testing.T) {
	p, ws := testPage(2)
	var s Session

	require.NoError(t, s.StartDrag(ws[0].ID, Point{X: 100, Y: 50}))
	s.PointerMove(Point{X: 130, Y: 45})
	require.Equal(t, Point{X: 30, Y: -5}, s.DragOffset())

	s.EndDrag(p, Point{X: 130, Y: 45}, nil)
	require.False(t, s.Active())
	require.Equal(t, Point{}, s.DragOffset())
}

func TestSession_DropOnBoundingBoxReorders(t *testing.T) {
	p, ws := testPage(3)
	var s Session
	bounds := map[string]Rect{
		ws[0].ID: {X: 0, Y: 0, Width: 100, Height: 80},
		ws[1].ID: {X: 100, Y: 0, Width: 100, Height: 80},
		ws[2].ID: {X: 200, Y: 0, Width: 100, Height: 80},
	}

	require.NoError(t, s.StartDrag(ws[0].ID, Point{X: 10, Y: 10}))
	res := s.EndDrag(p, Point{X: 250, Y: 40}, bounds)

	require.True(t, res.Reordered)
	require.Equal(t, ws[2].ID, res.TargetID)
	require.Equal(t, []*domain.Widget{ws[1], ws[2], ws[0]}, p.Widgets)
}

func TestSession_DropOutsideUsesNearestCenter(t *testing.T) {
	p, ws := testPage(2)
	var s Session
	bounds := map[string]Rect{
		ws[0].ID: {X: 0, Y: 0, Width: 100, Height: 80},
		ws[1].ID: {X: 300, Y: 0, Width: 100, Height: 80},
	}

	require.NoError(t, s.StartDrag(ws[0].ID, Point{X: 10, Y: 10}))
	// Released in empty canvas space, closer to the second widget's center.
	res := s.EndDrag(p, Point{X: 280, Y: 200}, bounds)

	require.Equal(t, ws[1].ID, res.TargetID)
	require.True(t, res.Reordered)
	require.Equal(t, []*domain.Widget{ws[1], ws[0]}, p.Widgets)
}

func TestSession_DragWithNoOtherWidgetsIsNoOp(t *testing.T) {
	p, ws := testPage(1)
	var s Session
	bounds := map[string]Rect{ws[0].ID: {X: 0, Y: 0, Width: 100, Height: 80}}

	require.NoError(t, s.StartDrag(ws[0].ID, Point{}))
	res := s.EndDrag(p, Point{X: 50, Y: 40}, bounds)
	require.False(t, res.Reordered)
	require.Equal(t, "", res.TargetID)
}

func TestSession_ResizeRecomputesSpansContinuously(t *testing.T) {
	_, ws := testPage(1)
	w := ws[0]
	w.Placement.ColumnSpan = 4
	w.Placement.RowSpan = 3

	var s Session
	require.NoError(t, s.StartResize(w, Point{X: 400, Y: 240}, 100, 80))

	s.PointerMove(Point{X: 610, Y: 240})
	require.Equal(t, 6, w.Placement.ColumnSpan)
	require.Equal(t, 3, w.Placement.RowSpan)

	s.PointerMove(Point{X: 2000, Y: -1000})
	require.Equal(t, domain.GridColumns, w.Placement.ColumnSpan)
	require.Equal(t, 1, w.Placement.RowSpan)

	require.Same(t, w, s.EndResize())
	require.False(t, s.Active())
}

func TestSession_MutualExclusion(t *testing.T) {
	_, ws := testPage(2)
	var s Session
	require.NoError(t, s.StartDrag(ws[0].ID, Point{}))

	err := s.StartResize(ws[1], Point{}, 100, 80)
	require.Error(t, err)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	require.Error(t, s.StartDrag(ws[1].ID, Point{}))
}
