package domain

const (
	DrillStatusHealthy = "Healthy"
	DrillStatusWatch   = "Watch"
	DrillStatusRisk    = "Risk"
)

// DrilldownRow is one line of the detail table opened from a chart point.
type DrilldownRow struct {
	Detail          string
	MeasureValue    float64
	ContributionPct string
	Status          string
	Owner           string
}

// DrilldownState is the one open drilldown a page may hold. SourceRow is the
// derived grid row of the source widget at open time; the panel renders
// immediately after that row, spanning the full grid width.
type DrilldownState struct {
	SourceWidgetID   string
	SourceRow        int
	PointLabel       string
	DimensionLabel   string
	MeasureLabel     string
	AggregationLabel string
	Rows             []DrilldownRow
}
