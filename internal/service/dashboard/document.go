package dashboard

import (
	"dash-demo/internal/domain"
)

// Name returns the dashboard name.
func (s *Service) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Rename sets the dashboard name.
func (s *Service) Rename(name string) error {
	if name == "" {
		return domain.ErrValidation("dashboard name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return nil
}

// Document serializes the full dashboard: every page's widgets in order plus
// the page filters. Field bindings serialize as names, the wire contract.
func (s *Service) Document() *domain.DashboardDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &domain.DashboardDocument{
		Name:        s.name,
		PageFilters: append([]domain.PageFilter(nil), s.filters...),
	}
	for _, p := range s.pages {
		pd := domain.PageDocument{ID: p.ID, Name: p.Name}
		for _, w := range p.Widgets {
			if w.IsChart() {
				payload, err := domain.BuildChartPayload(w)
				if err != nil {
					continue
				}
				pd.Widgets = append(pd.Widgets, domain.WidgetDocument{Chart: payload})
			} else if w.IsText() {
				payload, err := domain.BuildTextPayload(w)
				if err != nil {
					continue
				}
				pd.Widgets = append(pd.Widgets, domain.WidgetDocument{Text: payload})
			}
		}
		doc.Pages = append(doc.Pages, pd)
	}
	return doc
}

// hydrate rebuilds in-memory state from a stored document. Unresolvable
// field names drop to an unset slot with a warning rather than failing the
// whole load. Callers hold the mutex.
func (s *Service) hydrate(doc *domain.DashboardDocument) {
	s.name = doc.Name
	if s.name == "" {
		s.name = "My Dashboard"
	}
	s.filters = append([]domain.PageFilter(nil), doc.PageFilters...)
	s.pages = nil
	s.currentIdx = 0
	s.dirty = map[string]bool{}
	s.selectedID = ""
	s.editMode = false

	for _, pd := range doc.Pages {
		name := pd.Name
		if name == "" {
			name = "Page 1"
		}
		page := &domain.Page{ID: pd.ID, Name: name}
		if page.ID == "" {
			page.ID = domain.NewID()
		}
		for _, wd := range pd.Widgets {
			switch {
			case wd.Chart != nil:
				page.Widgets = append(page.Widgets, s.chartFromPayload(wd.Chart))
			case wd.Text != nil:
				page.Widgets = append(page.Widgets, textFromPayload(wd.Text))
			}
		}
		s.pages = append(s.pages, page)
	}
	if len(s.pages) == 0 {
		s.pages = []*domain.Page{domain.NewPage("Page 1")}
	}
}

func (s *Service) chartFromPayload(p *domain.ChartSavePayload) *domain.Widget {
	w := domain.NewChartWidget(p.Dataset)
	if p.ID != "" {
		w.ID = p.ID
	}
	w.SetColumnSpan(p.Width)
	w.SetRowSpan(p.Height)

	c := w.Chart
	c.SetVisualType(p.VisualType)
	if p.Dimension != nil {
		c.SetDimension(s.lookupField(p.Dataset, *p.Dimension))
	}

	var measures []domain.Field
	for _, name := range p.Measures {
		if f := s.lookupField(p.Dataset, name); f != nil {
			measures = append(measures, *f)
		}
	}
	c.SetMeasures(measures)

	for name, agg := range p.AggregationPerMeasure {
		if f := s.catalog.FieldByName(p.Dataset, name); f != nil {
			c.SetAggregation(f.ID, agg)
		}
	}
	if len(p.AggregationPerMeasure) == 0 && p.Aggregation != "" {
		if m := c.PrimaryMeasure(); m != nil {
			c.SetAggregation(m.ID, p.Aggregation)
		}
	}

	if p.Legend != nil {
		c.SetDimensionSlot(&c.Legend, s.lookupField(p.Dataset, *p.Legend))
	}
	if p.DrillDownField != nil {
		c.SetDimensionSlot(&c.DrillDownField, s.lookupField(p.Dataset, *p.DrillDownField))
	}
	if p.ColumnsField != nil {
		c.SetDimensionSlot(&c.ColumnsField, s.lookupField(p.Dataset, *p.ColumnsField))
	}
	if p.DateColumn != nil {
		c.SetDimensionSlot(&c.DateColumn, s.lookupField(p.Dataset, *p.DateColumn))
	}
	if p.SortBy != nil {
		c.SortBy = s.lookupField(p.Dataset, *p.SortBy)
	}

	c.ConditionString = p.ConditionString
	c.SetLimit(p.Limit)
	if p.DataLabelMode != "" {
		c.DataLabelMode = p.DataLabelMode
	}
	c.CombinationEnabled = p.CombinationEnabled
	if p.LabelPosition != "" {
		c.LabelPosition = p.LabelPosition
	}
	c.Title = p.Title
	c.TitleIsUserEdited = p.TitleIsUserEdited
	if c.Title == "" {
		c.TitleIsUserEdited = false
		c.ApplyAutoTitle()
	}
	return w
}

func (s *Service) lookupField(dataset, name string) *domain.Field {
	f := s.catalog.FieldByName(dataset, name)
	if f == nil && name != "" {
		s.logger.Warn("dropping unresolvable field binding", "dataset", dataset, "field", name)
	}
	return f
}

func textFromPayload(p *domain.TextSavePayload) *domain.Widget {
	w := domain.NewTextWidget()
	if p.ID != "" {
		w.ID = p.ID
	}
	w.SetColumnSpan(p.Width)
	w.SetRowSpan(p.Height)
	if p.Content != "" {
		w.Text.Content = p.Content
	}
	if p.FontSize > 0 {
		w.Text.FontSize = p.FontSize
	}
	if p.Color != "" {
		w.Text.Color = p.Color
	}
	return w
}
