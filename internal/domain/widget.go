package domain

import "fmt"

const (
	GridColumns = 12

	MaxMeasures = 2
	MaxLimit    = 10

	AggSum = "Sum"
	AggAvg = "Avg"
	AggMin = "Min"
	AggMax = "Max"

	VisualColumn       = "column"
	VisualBar          = "bar"
	VisualLine         = "line"
	VisualPie          = "pie"
	VisualArea         = "area"
	VisualPieDrilldown = "pie-drilldown"
	VisualCounter      = "counter"

	LabelTop    = "Top"
	LabelBottom = "Btm"
	LabelLeft   = "Lft"
	LabelRight  = "Rgt"

	DataLabelShowValues = "showValues"
	DataLabelPercentage = "percentage"
	DataLabelNone       = "none"
)

// ValidAggregation reports whether agg is one of Sum, Avg, Min, Max.
func ValidAggregation(agg string) bool {
	return agg == AggSum || agg == AggAvg || agg == AggMin || agg == AggMax
}

// ValidVisualType reports whether v is a member of the closed visual-type enum.
func ValidVisualType(v string) bool {
	switch v {
	case VisualColumn, VisualBar, VisualLine, VisualPie, VisualArea, VisualPieDrilldown, VisualCounter:
		return true
	}
	return false
}

// Placement holds the grid-cell footprint shared by every widget. The row a
// widget lands in is derived from list order by the layout engine, never stored.
type Placement struct {
	ColumnSpan int // 1..12
	RowSpan    int // >= 1
}

// Widget is one placed item on the canvas: exactly one of chart or text.
// The kind-specific configuration lives behind the tagged pointer so invalid
// field combinations cannot be constructed.
type Widget struct {
	ID        string
	Placement Placement
	Chart     *ChartConfig
	Text      *TextConfig
}

// ChartConfig holds a chart widget's field bindings and visual options.
// All mutation goes through the setters, which validate at the boundary so
// the invariants hold between operations.
type ChartConfig struct {
	Dataset              string
	Dimension            *Field
	Measures             []Field // ordered, first is primary, length <= 2
	AggregationPerMeasure map[string]string
	Legend               *Field
	DrillDownField       *Field
	ColumnsField         *Field
	DateColumn           *Field
	SortBy               *Field
	ConditionString      string
	Limit                int // 0..10, 0 means no limit
	DataLabelMode        string
	CombinationEnabled   bool
	LabelPosition        string
	VisualType           string
	Title                string
	TitleIsUserEdited    bool

	// Editor scratch owned by the widget so removal needs no side-table cleanup.
	CategorySearch string
	ValueSearch    string
}

// TextConfig holds a text widget's content and styling.
type TextConfig struct {
	Content  string
	FontSize int
	Color    string
}

// NewChartWidget creates a chart widget with the editor defaults.
func NewChartWidget(dataset string) *Widget {
	return &Widget{
		ID:        NewID(),
		Placement: Placement{ColumnSpan: 4, RowSpan: 3},
		Chart: &ChartConfig{
			Dataset:               dataset,
			AggregationPerMeasure: map[string]string{},
			Limit:                 4,
			DataLabelMode:         DataLabelShowValues,
			LabelPosition:         LabelBottom,
			VisualType:            VisualColumn,
			Title:                 "New Chart",
		},
	}
}

// NewTextWidget creates a text widget with the editor defaults.
func NewTextWidget() *Widget {
	return &Widget{
		ID:        NewID(),
		Placement: Placement{ColumnSpan: 4, RowSpan: 3},
		Text: &TextConfig{
			Content:  "Sample text widget. Click to edit content, font size and color.",
			FontSize: 14,
			Color:    "#1e293b",
		},
	}
}

// IsChart reports whether the widget is a chart.
func (w *Widget) IsChart() bool { return w.Chart != nil }

// IsText reports whether the widget is a text block.
func (w *Widget) IsText() bool { return w.Text != nil }

// ClampSpan returns span clamped to the valid column range [1, 12].
func ClampSpan(span int) int {
	if span < 1 {
		return 1
	}
	if span > GridColumns {
		return GridColumns
	}
	return span
}

// SetColumnSpan clamps and applies a new column span.
func (w *Widget) SetColumnSpan(span int) {
	w.Placement.ColumnSpan = ClampSpan(span)
}

// SetRowSpan applies a new row span with a floor of 1.
func (w *Widget) SetRowSpan(span int) {
	if span < 1 {
		span = 1
	}
	w.Placement.RowSpan = span
}

// SetDataset rebinds the chart to a dataset and clears every field binding,
// since field identity is only meaningful within one dataset.
func (c *ChartConfig) SetDataset(dataset string) {
	c.Dataset = dataset
	c.Dimension = nil
	c.Measures = nil
	c.AggregationPerMeasure = map[string]string{}
	c.Legend = nil
	c.DrillDownField = nil
	c.ColumnsField = nil
	c.DateColumn = nil
	c.SortBy = nil
}

// SetDimension binds the category axis. A measure-kind field is silently
// rejected and the slot is left unchanged; nil clears the slot.
func (c *ChartConfig) SetDimension(f *Field) {
	if f == nil {
		c.Dimension = nil
		return
	}
	if !f.IsDimension() {
		return
	}
	c.Dimension = f
}

// SetDimensionSlot binds one of the dimension-only slots (legend, drill-down,
// columns, date column) by the same silent-rejection rule as SetDimension.
func (c *ChartConfig) SetDimensionSlot(slot **Field, f *Field) {
	if f == nil {
		*slot = nil
		return
	}
	if !f.IsDimension() {
		return
	}
	*slot = f
}

// SetMeasures replaces the measure selection. Non-measure fields are dropped
// and the selection is sliced to the first two, so the measure count never
// exceeds two; a third selection is evicted silently, never an error.
func (c *ChartConfig) SetMeasures(fields []Field) {
	selected := make([]Field, 0, MaxMeasures)
	for _, f := range fields {
		if !f.IsMeasure() {
			continue
		}
		selected = append(selected, f)
		if len(selected) == MaxMeasures {
			break
		}
	}
	c.Measures = selected

	kept := make(map[string]bool, len(selected))
	for _, f := range selected {
		kept[f.ID] = true
	}
	for id := range c.AggregationPerMeasure {
		if !kept[id] {
			delete(c.AggregationPerMeasure, id)
		}
	}
}

// PrimaryMeasure returns the first selected measure, or nil.
func (c *ChartConfig) PrimaryMeasure() *Field {
	if len(c.Measures) == 0 {
		return nil
	}
	return &c.Measures[0]
}

// SecondaryMeasure returns the second selected measure, or nil.
func (c *ChartConfig) SecondaryMeasure() *Field {
	if len(c.Measures) < 2 {
		return nil
	}
	return &c.Measures[1]
}

// SetAggregation records the aggregation for a selected measure. Unknown
// aggregations are silently rejected.
func (c *ChartConfig) SetAggregation(measureID, agg string) {
	if !ValidAggregation(agg) {
		return
	}
	if c.AggregationPerMeasure == nil {
		c.AggregationPerMeasure = map[string]string{}
	}
	c.AggregationPerMeasure[measureID] = agg
}

// AggregationFor returns the configured aggregation for a measure,
// defaulting to Sum when absent.
func (c *ChartConfig) AggregationFor(measureID string) string {
	if agg, ok := c.AggregationPerMeasure[measureID]; ok {
		return agg
	}
	return AggSum
}

// PrimaryAggregation returns the primary measure's aggregation (Sum when no
// measure is bound).
func (c *ChartConfig) PrimaryAggregation() string {
	m := c.PrimaryMeasure()
	if m == nil {
		return AggSum
	}
	return c.AggregationFor(m.ID)
}

// SetLimit clamps the row limit into [0, 10]; 0 keeps all rows.
func (c *ChartConfig) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	c.Limit = limit
}

// SetVisualType applies a visual type from the closed enum; unknown values
// are silently rejected.
func (c *ChartConfig) SetVisualType(v string) {
	if !ValidVisualType(v) {
		return
	}
	c.VisualType = v
}

// SetTitle records a user-edited title and suppresses auto-title regeneration
// from then on.
func (c *ChartConfig) SetTitle(title string) {
	c.Title = title
	c.TitleIsUserEdited = true
}

// AutoTitle derives the chart title from the bound dimension, primary measure,
// and aggregation. Sum is the unmarked case.
func (c *ChartConfig) AutoTitle() string {
	var measureName, dimensionName string
	if m := c.PrimaryMeasure(); m != nil {
		measureName = m.Name
	}
	if c.Dimension != nil {
		dimensionName = c.Dimension.Name
	}
	agg := c.PrimaryAggregation()

	switch {
	case measureName == "" && dimensionName == "":
		return "New Chart"
	case measureName != "" && dimensionName != "":
		if agg == AggSum {
			return fmt.Sprintf("%s by %s", measureName, dimensionName)
		}
		return fmt.Sprintf("%s %s by %s", agg, measureName, dimensionName)
	case measureName != "":
		if agg == AggSum {
			return measureName
		}
		return fmt.Sprintf("%s %s", agg, measureName)
	default:
		return fmt.Sprintf("By %s", dimensionName)
	}
}

// ApplyAutoTitle regenerates the title unless the user has edited it directly.
func (c *ChartConfig) ApplyAutoTitle() {
	if c.TitleIsUserEdited {
		return
	}
	c.Title = c.AutoTitle()
}
