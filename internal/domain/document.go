package domain

// ChartSavePayload is the wire contract for persisting one chart widget.
// Fields carry resolved field NAMES, never ids; names are the persisted
// contract and must round-trip.
type ChartSavePayload struct {
	ID                    string            `json:"id"`
	Title                 string            `json:"title"`
	VisualType            string            `json:"visType"`
	Dimension             *string           `json:"xAxis"`
	PrimaryMeasure        *string           `json:"yAxis"`
	Measures              []string          `json:"yAxes"`
	Aggregation           string            `json:"yAgg"`
	AggregationPerMeasure map[string]string `json:"yAggByMeasure,omitempty"`
	LabelPosition         string            `json:"labelPosition"`
	Width                 int               `json:"width"`
	Height                int               `json:"height"`
	Dataset               string            `json:"dataset"`
	Legend                *string           `json:"legend"`
	DrillDownField        *string           `json:"drillDownField"`
	ColumnsField          *string           `json:"columnsField"`
	DateColumn            *string           `json:"dateColumn"`
	ConditionString       string            `json:"conditionString"`
	Limit                 int               `json:"limit"`
	DataLabelMode         string            `json:"dataLabelOption"`
	CombinationEnabled    bool              `json:"enableCombination"`
	SortBy                *string           `json:"sortBy"`
	TitleIsUserEdited     bool              `json:"userEditedTitle"`
}

// TextSavePayload is the persisted form of a text widget.
type TextSavePayload struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	FontSize int    `json:"fontSize"`
	Color    string `json:"color"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// WidgetDocument is one widget inside a serialized dashboard page.
type WidgetDocument struct {
	Chart *ChartSavePayload `json:"chart,omitempty"`
	Text  *TextSavePayload  `json:"text,omitempty"`
}

// PageDocument is one serialized page.
type PageDocument struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Widgets []WidgetDocument `json:"widgets"`
}

// DashboardDocument is the full persisted dashboard: ordered pages plus the
// dashboard-wide page filters.
type DashboardDocument struct {
	Name        string         `json:"dashboardName"`
	Pages       []PageDocument `json:"pages"`
	PageFilters []PageFilter   `json:"pageFilters"`
}

func fieldName(f *Field) *string {
	if f == nil {
		return nil
	}
	name := f.Name
	return &name
}

// BuildChartPayload resolves a chart widget's bindings into the name-based
// wire payload. Returns a validation error for non-chart widgets.
func BuildChartPayload(w *Widget) (*ChartSavePayload, error) {
	if !w.IsChart() {
		return nil, ErrValidation("widget %s is not a chart", w.ID)
	}
	c := w.Chart

	measures := make([]string, 0, len(c.Measures))
	aggByMeasure := make(map[string]string, len(c.Measures))
	for _, m := range c.Measures {
		measures = append(measures, m.Name)
		aggByMeasure[m.Name] = c.AggregationFor(m.ID)
	}

	return &ChartSavePayload{
		ID:                    w.ID,
		Title:                 c.Title,
		VisualType:            c.VisualType,
		Dimension:             fieldName(c.Dimension),
		PrimaryMeasure:        fieldName(c.PrimaryMeasure()),
		Measures:              measures,
		Aggregation:           c.PrimaryAggregation(),
		AggregationPerMeasure: aggByMeasure,
		LabelPosition:         c.LabelPosition,
		Width:                 w.Placement.ColumnSpan,
		Height:                w.Placement.RowSpan,
		Dataset:               c.Dataset,
		Legend:                fieldName(c.Legend),
		DrillDownField:        fieldName(c.DrillDownField),
		ColumnsField:          fieldName(c.ColumnsField),
		DateColumn:            fieldName(c.DateColumn),
		ConditionString:       c.ConditionString,
		Limit:                 c.Limit,
		DataLabelMode:         c.DataLabelMode,
		CombinationEnabled:    c.CombinationEnabled,
		SortBy:                fieldName(c.SortBy),
		TitleIsUserEdited:     c.TitleIsUserEdited,
	}, nil
}

// BuildTextPayload serializes a text widget. Returns a validation error for
// non-text widgets.
func BuildTextPayload(w *Widget) (*TextSavePayload, error) {
	if !w.IsText() {
		return nil, ErrValidation("widget %s is not a text block", w.ID)
	}
	return &TextSavePayload{
		ID:       w.ID,
		Content:  w.Text.Content,
		FontSize: w.Text.FontSize,
		Color:    w.Text.Color,
		Width:    w.Placement.ColumnSpan,
		Height:   w.Placement.RowSpan,
	}, nil
}
