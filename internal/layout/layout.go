// Package layout implements the 12-column grid packing model and the
// pointer-driven drag and resize interactions over a page's widget order.
package layout

import "dash-demo/internal/domain"

// RowMap assigns each widget to a grid row. Packing is greedy left-to-right:
// a widget whose span does not fit in the remaining columns of the current
// row starts the next row. Recompute after every structural change, the map
// is never cached across mutations.
func RowMap(widgets []*domain.Widget) map[string]int {
	rows := make(map[string]int, len(widgets))
	row := 1
	consumed := 0
	for _, w := range widgets {
		span := domain.ClampSpan(w.Placement.ColumnSpan)
		if consumed+span > domain.GridColumns {
			row++
			consumed = 0
		}
		rows[w.ID] = row
		consumed += span
	}
	return rows
}

// RowOf returns the packed row of a widget, or 1 for an unknown id.
func RowOf(widgets []*domain.Widget, widgetID string) int {
	if row, ok := RowMap(widgets)[widgetID]; ok {
		return row
	}
	return 1
}

// LastWidgetOfRow returns the id of the final widget packed into the given
// row, or "" when the row is empty. The drilldown panel splices in directly
// after this widget.
func LastWidgetOfRow(widgets []*domain.Widget, rowNumber int) string {
	last := ""
	row := 1
	consumed := 0
	for _, w := range widgets {
		span := domain.ClampSpan(w.Placement.ColumnSpan)
		if consumed+span > domain.GridColumns {
			row++
			consumed = 0
		}
		if row == rowNumber {
			last = w.ID
		}
		consumed += span
	}
	return last
}
