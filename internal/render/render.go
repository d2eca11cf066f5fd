// Package render turns pipeline results into HTML fragments for embedding in
// a host page. Charts render as a container carrying the series data; the
// counter, drilldown table, and no-data placeholder render fully server-side.
package render

import (
	"encoding/json"
	"fmt"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"dash-demo/internal/domain"
	"dash-demo/internal/pipeline"
)

// Widget renders one evaluated widget into its fragment.
func Widget(w *domain.Widget, res pipeline.Result) (gomponents.Node, error) {
	if w.IsText() {
		return textBlock(w), nil
	}
	switch res.Kind {
	case pipeline.KindNoData:
		return noData(), nil
	case pipeline.KindCounter:
		return counter(res.Counter), nil
	case pipeline.KindPieDrilldown, pipeline.KindCategorical:
		return chartContainer(w, res)
	default:
		return nil, domain.ErrValidation("unknown result kind %q", res.Kind)
	}
}

func textBlock(w *domain.Widget) gomponents.Node {
	return html.Div(
		html.Class("widget-text"),
		html.Style(fmt.Sprintf("font-size:%dpx;color:%s;", w.Text.FontSize, w.Text.Color)),
		gomponents.Text(w.Text.Content),
	)
}

// noData is the neutral placeholder shown when a chart has no dimension or
// measures bound.
func noData() gomponents.Node {
	return html.Div(
		html.Class("widget-empty"),
		gomponents.Text("Select a dimension and measure to display data"),
	)
}

// counter renders the scalar widget: compact current value and a signed
// delta versus the derived previous period.
func counter(c *pipeline.Counter) gomponents.Node {
	up := c.DeltaPct >= 0
	arrow := "▼"
	trendClass := "counter-trend down"
	if up {
		arrow = "▲"
		trendClass = "counter-trend up"
	}
	return html.Div(
		html.Class("widget-counter"),
		html.Div(html.Class("counter-label"), gomponents.Text(c.Label)),
		html.Div(html.Class("counter-value"), gomponents.Text(CompactValue(c.Current))),
		html.Div(
			html.Class(trendClass),
			html.Span(gomponents.Text(arrow)),
			html.Span(gomponents.Text(deltaLabel(c.DeltaPct))),
			html.Span(html.Class("counter-caption"), gomponents.Text("vs previous period")),
		),
	)
}

func deltaLabel(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// chartContainer renders the mount point for a client-side chart, carrying
// the evaluated series as a JSON data attribute.
func chartContainer(w *domain.Widget, res pipeline.Result) (gomponents.Node, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode chart data: %w", err)
	}
	return html.Div(
		html.Class("widget-chart"),
		html.ID("chart-"+w.ID),
		gomponents.Attr("data-vis-type", res.VisualType),
		gomponents.Attr("data-chart", string(data)),
		html.Div(html.Class("widget-title"), gomponents.Text(w.Chart.Title)),
	), nil
}

// DrilldownPanel renders the detail table spliced in after the source
// widget's grid row.
func DrilldownPanel(dd *domain.DrilldownState) gomponents.Node {
	rows := make([]gomponents.Node, 0, len(dd.Rows))
	for _, r := range dd.Rows {
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(r.Detail)),
			html.Td(gomponents.Text(CompactValue(r.MeasureValue))),
			html.Td(gomponents.Text(r.ContributionPct)),
			html.Td(html.Span(html.Class("status status-"+r.Status), gomponents.Text(r.Status))),
			html.Td(gomponents.Text(r.Owner)),
		))
	}
	heading := fmt.Sprintf("%s: %s (%s %s)", dd.DimensionLabel, dd.PointLabel, dd.AggregationLabel, dd.MeasureLabel)
	return html.Div(
		html.Class("drilldown-panel"),
		html.Div(html.Class("drilldown-heading"), gomponents.Text(heading)),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Detail")),
				html.Th(gomponents.Text("Value")),
				html.Th(gomponents.Text("Contribution")),
				html.Th(gomponents.Text("Status")),
				html.Th(gomponents.Text("Owner")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

// CompactValue formats a number the way dashboard tiles do: 7200 becomes
// "7.2K", 1500000 becomes "1.5M", small values keep at most one decimal.
func CompactValue(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return trimZero(fmt.Sprintf("%.1fB", v/1e9))
	case abs >= 1e6:
		return trimZero(fmt.Sprintf("%.1fM", v/1e6))
	case abs >= 1e3:
		return trimZero(fmt.Sprintf("%.1fK", v/1e3))
	default:
		return trimZero(fmt.Sprintf("%.1f", v))
	}
}

func trimZero(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && i+1 < len(s) && s[i+1] == '0' {
			return s[:i] + s[i+2:]
		}
	}
	return s
}
