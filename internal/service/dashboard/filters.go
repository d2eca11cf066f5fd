package dashboard

import (
	"sort"

	"dash-demo/internal/domain"
)

// PageFilters returns a copy of the dashboard-wide filter set.
func (s *Service) PageFilters() []domain.PageFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PageFilter(nil), s.filters...)
}

// SetFilters replaces the filter set. One entry per column; empty values
// normalize to the inactive "All" sentinel. Replacing the set never closes
// an open drilldown, charts simply re-evaluate under the new filters.
func (s *Service) SetFilters(filters []domain.PageFilter) error {
	seen := make(map[string]bool, len(filters))
	normalized := make([]domain.PageFilter, 0, len(filters))
	for _, f := range filters {
		if f.Column == "" {
			return domain.ErrValidation("page filter column must not be empty")
		}
		if seen[f.Column] {
			return domain.ErrValidation("duplicate page filter column %q", f.Column)
		}
		seen[f.Column] = true
		if f.Value == "" {
			f.Value = domain.FilterValueAll
		}
		normalized = append(normalized, f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = normalized
	return nil
}

// SetFilterValue updates one existing filter's value.
func (s *Service) SetFilterValue(column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.filters {
		if s.filters[i].Column == column {
			if value == "" {
				value = domain.FilterValueAll
			}
			s.filters[i].Value = value
			return nil
		}
	}
	return domain.ErrNotFound("page filter %q not found", column)
}

// RemoveFilter drops a filter column entirely.
func (s *Service) RemoveFilter(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.filters[:0]
	for _, f := range s.filters {
		if f.Column != column {
			kept = append(kept, f)
		}
	}
	s.filters = kept
}

// CommonFilterColumns returns the dimension names shared by every dataset in
// use on the current page's charts, sorted. Empty when no charts exist.
func (s *Service) CommonFilterColumns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var datasets []string
	seen := map[string]bool{}
	for _, w := range s.currentPage().ChartWidgets() {
		if !seen[w.Chart.Dataset] {
			seen[w.Chart.Dataset] = true
			datasets = append(datasets, w.Chart.Dataset)
		}
	}
	if len(datasets) == 0 {
		return nil
	}

	common := s.catalog.DimensionNames(datasets[0])
	for _, ds := range datasets[1:] {
		dims := map[string]bool{}
		for _, name := range s.catalog.DimensionNames(ds) {
			dims[name] = true
		}
		kept := common[:0]
		for _, name := range common {
			if dims[name] {
				kept = append(kept, name)
			}
		}
		common = kept
	}
	sort.Strings(common)
	return common
}

// FilterOptions returns the selectable values for a filter column, always
// starting with the inactive "All" option.
func (s *Service) FilterOptions(column string) []string {
	options := []string{domain.FilterValueAll}
	for _, v := range s.engine.Values(column) {
		if v != domain.FilterValueAll {
			options = append(options, v)
		}
	}
	return options
}

// ShowIneligibleFilterWarning reports whether a filter column applies to some
// but not all charts on the current page.
func (s *Service) ShowIneligibleFilterWarning(column string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	charts := s.currentPage().ChartWidgets()
	if len(charts) == 0 {
		return false
	}
	eligible := 0
	for _, w := range charts {
		if s.engine.EligibleForFilter(w.Chart, column) {
			eligible++
		}
	}
	return eligible > 0 && eligible < len(charts)
}
