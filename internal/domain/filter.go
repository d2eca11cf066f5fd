package domain

// FilterValueAll is the sentinel meaning a page filter is present but inactive.
const FilterValueAll = "All"

// PageFilter is a dashboard-wide value constraint applied to all eligible
// charts. One entry exists per distinct column name.
type PageFilter struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Active reports whether the filter constrains anything.
func (f PageFilter) Active() bool { return f.Value != FilterValueAll }

// ActiveFilters returns the subset of filters whose value is not "All".
func ActiveFilters(filters []PageFilter) []PageFilter {
	var active []PageFilter
	for _, f := range filters {
		if f.Active() {
			active = append(active, f)
		}
	}
	return active
}
