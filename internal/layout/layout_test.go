package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dash-demo/internal/domain"
)

func widgetsWithSpans(spans ...int) []*domain.Widget {
	ws := make([]*domain.Widget, 0, len(spans))
	for _, s := range spans {
		w := domain.NewTextWidget()
		w.Placement.ColumnSpan = s
		ws = append(ws, w)
	}
	return ws
}

func TestRowMap_GreedyPacking(t *testing.T) {
	ws := widgetsWithSpans(6, 6, 4)
	rows := RowMap(ws)
	require.Equal(t, 1, rows[ws[0].ID])
	require.Equal(t, 1, rows[ws[1].ID])
	require.Equal(t, 2, rows[ws[2].ID])

	ws = widgetsWithSpans(12, 1)
	rows = RowMap(ws)
	require.Equal(t, 1, rows[ws[0].ID])
	require.Equal(t, 2, rows[ws[1].ID])
}

func TestRowMap_ClampsOversizedSpans(t *testing.T) {
	ws := widgetsWithSpans(30, 0)
	rows := RowMap(ws)
	// 30 clamps to 12 and fills row 1; 0 clamps to 1 and wraps.
	require.Equal(t, 1, rows[ws[0].ID])
	require.Equal(t, 2, rows[ws[1].ID])
}

func TestRowOf_UnknownDefaultsToFirstRow(t *testing.T) {
	ws := widgetsWithSpans(6, 6)
	require.Equal(t, 1, RowOf(ws, "missing"))
}

func TestLastWidgetOfRow(t *testing.T) {
	ws := widgetsWithSpans(6, 6, 4, 4)
	require.Equal(t, ws[1].ID, LastWidgetOfRow(ws, 1))
	require.Equal(t, ws[3].ID, LastWidgetOfRow(ws, 2))
	require.Equal(t, "", LastWidgetOfRow(ws, 3))
}
