// Package pipeline evaluates a chart widget's field bindings into renderable
// series. Evaluation is deterministic: the same widget and filter set always
// produce identical output, values are derived by hashing category names.
package pipeline

import (
	"math"
	"sort"

	"dash-demo/internal/domain"
)

// Result kinds.
const (
	KindNoData       = "no-data"
	KindCategorical  = "categorical"
	KindCounter      = "counter"
	KindPieDrilldown = "pie-drilldown"
)

// Series is one renderable value sequence aligned with Result.Categories.
type Series struct {
	Name   string
	Type   string // visual type of this series; trend overlays are always lines
	Values []float64
}

// Counter is the scalar result shape for counter widgets. Previous is a
// deterministically derived comparison value, DeltaPct is 0 when Previous is 0.
type Counter struct {
	Label    string
	Current  float64
	Previous float64
	DeltaPct float64
}

// StorePoint is one bar of a region's static drill breakdown.
type StorePoint struct {
	Name  string
	Value float64
}

// RegionSlice is one slice of the pie-drilldown visual with its nested
// breakdown level.
type RegionSlice struct {
	Name      string
	Value     float64
	Breakdown []StorePoint
}

// Result is the pipeline output handed to the render adapter.
type Result struct {
	Kind       string
	VisualType string
	Categories []string
	Series     []Series
	Counter    *Counter
	Regions    []RegionSlice

	DataLabelMode      string
	LabelPosition      string
	CombinationEnabled bool
}

// Engine evaluates widgets against the field catalog and data source.
type Engine struct {
	catalog domain.FieldCatalog
	source  domain.DataSource
}

// New builds an evaluation engine.
func New(catalog domain.FieldCatalog, source domain.DataSource) *Engine {
	return &Engine{catalog: catalog, source: source}
}

func charSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

func firstChar(s string) int {
	for _, r := range s {
		return int(r)
	}
	return 0
}

// dampingFactor derives the deterministic 0.65..0.94 multiplier applied when
// a page filter targets a dimension other than the chart's bound one.
func dampingFactor(filterValue string) float64 {
	return 0.65 + float64(charSum(filterValue)%30)/100
}

// EligibleForFilter reports whether a chart's dataset carries the filter
// column among its dimensions.
func (e *Engine) EligibleForFilter(c *domain.ChartConfig, column string) bool {
	for _, f := range e.catalog.Fields(c.Dataset) {
		if f.IsDimension() && f.Name == column {
			return true
		}
	}
	return false
}

// Values exposes the data source's categorical members for a dimension name,
// used to build filter option lists.
func (e *Engine) Values(dimensionName string) []string {
	return e.source.CategoricalValues(dimensionName)
}

func (e *Engine) eligibleFilters(c *domain.ChartConfig, filters []domain.PageFilter) []domain.PageFilter {
	var eligible []domain.PageFilter
	for _, f := range filters {
		if f.Active() && e.EligibleForFilter(c, f.Column) {
			eligible = append(eligible, f)
		}
	}
	return eligible
}

// Evaluate runs the fixed fetch, sort, limit, filter pipeline for a widget.
// Counter and pie-drilldown visuals return their own result shapes; a chart
// with no dimension or no measures yields a no-data result, never an error.
func (e *Engine) Evaluate(w *domain.Widget, filters []domain.PageFilter) Result {
	if !w.IsChart() {
		return Result{Kind: KindNoData}
	}
	c := w.Chart
	eligible := e.eligibleFilters(c, filters)

	if c.VisualType == domain.VisualPieDrilldown {
		return e.evaluatePieDrilldown(c, eligible)
	}

	categories, values := e.categoryValues(c, eligible)

	if c.VisualType == domain.VisualCounter {
		return e.evaluateCounter(c, values)
	}

	if c.Dimension == nil || len(c.Measures) == 0 {
		return Result{Kind: KindNoData, VisualType: c.VisualType}
	}

	res := Result{
		Kind:               KindCategorical,
		VisualType:         c.VisualType,
		Categories:         categories,
		DataLabelMode:      c.DataLabelMode,
		LabelPosition:      c.LabelPosition,
		CombinationEnabled: c.CombinationEnabled,
	}

	primary := c.PrimaryMeasure()
	res.Series = append(res.Series, Series{
		Name:   c.AggregationFor(primary.ID) + " of " + primary.Name,
		Type:   c.VisualType,
		Values: values,
	})

	if secondary := c.SecondaryMeasure(); secondary != nil && c.VisualType != domain.VisualPie {
		scaled := make([]float64, len(values))
		for i, v := range values {
			scaled[i] = math.Round(v * 0.74)
		}
		res.Series = append(res.Series, Series{
			Name:   c.AggregationFor(secondary.ID) + " of " + secondary.Name,
			Type:   c.VisualType,
			Values: scaled,
		})
	}

	if c.CombinationEnabled && (c.VisualType == domain.VisualColumn || c.VisualType == domain.VisualBar) {
		trend := make([]float64, len(values))
		for i, v := range values {
			trend[i] = math.Round(v * 0.82)
		}
		res.Series = append(res.Series, Series{
			Name:   "Trend " + primary.Name,
			Type:   domain.VisualLine,
			Values: trend,
		})
	}

	return res
}

// categoryValues runs steps 1 through 4: fetch, sort, limit, filter. Filtering
// runs after limiting on purpose, a filter can shrink the window but never
// reveal rows the limit discarded.
func (e *Engine) categoryValues(c *domain.ChartConfig, eligible []domain.PageFilter) ([]string, []float64) {
	if c.Dimension == nil || len(c.Measures) == 0 {
		return nil, nil
	}

	categories := e.source.CategoricalValues(c.Dimension.Name)
	values := make([]float64, len(categories))
	for i, name := range categories {
		seed := firstChar(name) + (i+1)*9
		values[i] = float64(900 + (seed%8)*240)
	}

	if c.SortBy != nil {
		idx := make([]int, len(categories))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })
		sortedCats := make([]string, len(idx))
		sortedVals := make([]float64, len(idx))
		for i, j := range idx {
			sortedCats[i] = categories[j]
			sortedVals[i] = values[j]
		}
		categories, values = sortedCats, sortedVals
	}

	if c.Limit >= 1 && c.Limit <= domain.MaxLimit && c.Limit < len(categories) {
		categories = categories[:c.Limit]
		values = values[:c.Limit]
	}

	for _, f := range eligible {
		if c.Dimension.Name == f.Column {
			var keptCats []string
			var keptVals []float64
			for i, cat := range categories {
				if cat == f.Value {
					keptCats = append(keptCats, cat)
					keptVals = append(keptVals, values[i])
				}
			}
			// Nothing matched: keep the previous list rather than emptying it.
			if len(keptCats) > 0 {
				categories, values = keptCats, keptVals
			}
		} else {
			factor := dampingFactor(f.Value)
			for i, v := range values {
				values[i] = math.Round(v * factor)
			}
		}
	}

	return categories, values
}

func (e *Engine) evaluateCounter(c *domain.ChartConfig, values []float64) Result {
	primary := c.PrimaryMeasure()
	if primary == nil {
		return Result{Kind: KindNoData, VisualType: domain.VisualCounter}
	}

	agg := c.PrimaryAggregation()
	current := Aggregate(values, agg)
	trendSeed := len(primary.Name) + c.Limit
	previous := current * (0.82 + float64(trendSeed%7)/25)
	deltaPct := 0.0
	if previous != 0 {
		deltaPct = (current - previous) / previous * 100
	}

	return Result{
		Kind:       KindCounter,
		VisualType: domain.VisualCounter,
		Counter: &Counter{
			Label:    agg + " of " + primary.Name,
			Current:  current,
			Previous: previous,
			DeltaPct: deltaPct,
		},
	}
}

var regionBreakdowns = map[string][]StorePoint{
	"North": {{"Store A", 1400}, {"Store B", 1200}, {"Store C", 900}, {"Store D", 600}},
	"South": {{"Store E", 1100}, {"Store F", 900}, {"Store G", 700}, {"Store H", 500}},
	"West":  {{"Store I", 1000}, {"Store J", 800}, {"Store K", 500}, {"Store L", 400}},
	"East":  {{"Store M", 1200}, {"Store N", 900}, {"Store O", 500}, {"Store P", 300}},
}

var regionTotals = []RegionSlice{
	{Name: "North", Value: 4100},
	{Name: "South", Value: 3200},
	{Name: "West", Value: 2700},
	{Name: "East", Value: 2900},
}

// evaluatePieDrilldown skips the category pipeline and serves the fixed
// region totals, still honoring page filters under the eligibility rule.
func (e *Engine) evaluatePieDrilldown(c *domain.ChartConfig, eligible []domain.PageFilter) Result {
	regions := make([]RegionSlice, len(regionTotals))
	copy(regions, regionTotals)

	for _, f := range eligible {
		if f.Column == "Region" {
			var kept []RegionSlice
			for _, r := range regions {
				if r.Name == f.Value {
					kept = append(kept, r)
				}
			}
			regions = kept
		} else {
			factor := dampingFactor(f.Value)
			for i := range regions {
				regions[i].Value = math.Round(regions[i].Value * factor)
			}
		}
	}

	for i := range regions {
		regions[i].Breakdown = append([]StorePoint(nil), regionBreakdowns[regions[i].Name]...)
	}

	return Result{
		Kind:       KindPieDrilldown,
		VisualType: domain.VisualPieDrilldown,
		Regions:    regions,
	}
}

// Aggregate reduces a value list; the empty list aggregates to 0.
func Aggregate(values []float64, agg string) float64 {
	if len(values) == 0 {
		return 0
	}
	switch agg {
	case domain.AggAvg:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case domain.AggMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case domain.AggMax:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	default:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	}
}
