package dashboard

import (
	"dash-demo/internal/domain"
)

// UpdateChartRequest carries a partial chart mutation. Nil pointers leave a
// setting untouched; empty-string field names clear the slot. Field bindings
// arrive as names, the wire contract, and are resolved against the catalog.
type UpdateChartRequest struct {
	Dataset            *string           `json:"dataset,omitempty"`
	Dimension          *string           `json:"xAxis,omitempty"`
	Measures           *[]string         `json:"yAxes,omitempty"`
	Aggregations       map[string]string `json:"yAggByMeasure,omitempty"`
	Legend             *string           `json:"legend,omitempty"`
	DrillDownField     *string           `json:"drillDownField,omitempty"`
	ColumnsField       *string           `json:"columnsField,omitempty"`
	DateColumn         *string           `json:"dateColumn,omitempty"`
	SortBy             *string           `json:"sortBy,omitempty"`
	ConditionString    *string           `json:"conditionString,omitempty"`
	Limit              *int              `json:"limit,omitempty"`
	DataLabelMode      *string           `json:"dataLabelOption,omitempty"`
	CombinationEnabled *bool             `json:"enableCombination,omitempty"`
	LabelPosition      *string           `json:"labelPosition,omitempty"`
	VisualType         *string           `json:"visType,omitempty"`
	Title              *string           `json:"title,omitempty"`
	Width              *int              `json:"width,omitempty"`
	Height             *int              `json:"height,omitempty"`
}

// Validate checks the closed enums up front; unknown members are rejected at
// the boundary rather than silently dropped, unlike kind mismatches.
func (r *UpdateChartRequest) Validate() error {
	if r.VisualType != nil && !domain.ValidVisualType(*r.VisualType) {
		return domain.ErrValidation("unknown visual type %q", *r.VisualType)
	}
	for name, agg := range r.Aggregations {
		if !domain.ValidAggregation(agg) {
			return domain.ErrValidation("unknown aggregation %q for measure %q", agg, name)
		}
	}
	if r.DataLabelMode != nil {
		switch *r.DataLabelMode {
		case domain.DataLabelShowValues, domain.DataLabelPercentage, domain.DataLabelNone:
		default:
			return domain.ErrValidation("unknown data label mode %q", *r.DataLabelMode)
		}
	}
	if r.LabelPosition != nil {
		switch *r.LabelPosition {
		case domain.LabelTop, domain.LabelBottom, domain.LabelLeft, domain.LabelRight:
		default:
			return domain.ErrValidation("unknown label position %q", *r.LabelPosition)
		}
	}
	return nil
}

// UpdateTextRequest carries a partial text-widget mutation.
type UpdateTextRequest struct {
	Content  *string `json:"content,omitempty"`
	FontSize *int    `json:"fontSize,omitempty"`
	Color    *string `json:"color,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Height   *int    `json:"height,omitempty"`
}

// UpdateChart applies a partial mutation to a chart on the current page.
// Every applied change marks the chart dirty and refreshes the auto title
// unless the user has edited it.
func (s *Service) UpdateChart(id string, req *UpdateChartRequest) (*domain.Widget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.currentPage().WidgetByID(id)
	if w == nil {
		return nil, domain.ErrNotFound("widget %s not found", id)
	}
	if !w.IsChart() {
		return nil, domain.ErrValidation("widget %s is not a chart", id)
	}
	c := w.Chart

	if req.Dataset != nil {
		if s.catalog.Fields(*req.Dataset) == nil {
			return nil, domain.ErrValidation("unknown dataset %q", *req.Dataset)
		}
		c.SetDataset(*req.Dataset)
	}

	if req.Dimension != nil {
		f, err := s.resolveField(c.Dataset, *req.Dimension)
		if err != nil {
			return nil, err
		}
		c.SetDimension(f)
	}

	if req.Measures != nil {
		fields := make([]domain.Field, 0, len(*req.Measures))
		for _, name := range *req.Measures {
			f, err := s.resolveField(c.Dataset, name)
			if err != nil {
				return nil, err
			}
			if f != nil {
				fields = append(fields, *f)
			}
		}
		c.SetMeasures(fields)
	}

	for name, agg := range req.Aggregations {
		if f := s.catalog.FieldByName(c.Dataset, name); f != nil {
			c.SetAggregation(f.ID, agg)
		}
	}

	for _, slot := range []struct {
		target **domain.Field
		name   *string
	}{
		{&c.Legend, req.Legend},
		{&c.DrillDownField, req.DrillDownField},
		{&c.ColumnsField, req.ColumnsField},
		{&c.DateColumn, req.DateColumn},
	} {
		if slot.name == nil {
			continue
		}
		f, err := s.resolveField(c.Dataset, *slot.name)
		if err != nil {
			return nil, err
		}
		c.SetDimensionSlot(slot.target, f)
	}

	if req.SortBy != nil {
		f, err := s.resolveField(c.Dataset, *req.SortBy)
		if err != nil {
			return nil, err
		}
		c.SortBy = f
	}

	if req.ConditionString != nil {
		c.ConditionString = *req.ConditionString
	}
	if req.Limit != nil {
		c.SetLimit(*req.Limit)
	}
	if req.DataLabelMode != nil {
		c.DataLabelMode = *req.DataLabelMode
	}
	if req.CombinationEnabled != nil {
		c.CombinationEnabled = *req.CombinationEnabled
	}
	if req.LabelPosition != nil {
		c.LabelPosition = *req.LabelPosition
	}
	if req.VisualType != nil {
		c.SetVisualType(*req.VisualType)
	}
	if req.Title != nil {
		c.SetTitle(*req.Title)
	}
	if req.Width != nil {
		w.SetColumnSpan(*req.Width)
	}
	if req.Height != nil {
		w.SetRowSpan(*req.Height)
	}

	c.ApplyAutoTitle()
	s.dirty[w.ID] = true
	return w, nil
}

// UpdateText applies a partial mutation to a text widget. Text widgets carry
// no dirty tracking.
func (s *Service) UpdateText(id string, req *UpdateTextRequest) (*domain.Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.currentPage().WidgetByID(id)
	if w == nil {
		return nil, domain.ErrNotFound("widget %s not found", id)
	}
	if !w.IsText() {
		return nil, domain.ErrValidation("widget %s is not a text block", id)
	}

	if req.Content != nil {
		w.Text.Content = *req.Content
	}
	if req.FontSize != nil && *req.FontSize > 0 {
		w.Text.FontSize = *req.FontSize
	}
	if req.Color != nil {
		w.Text.Color = *req.Color
	}
	if req.Width != nil {
		w.SetColumnSpan(*req.Width)
	}
	if req.Height != nil {
		w.SetRowSpan(*req.Height)
	}
	return w, nil
}

// resolveField maps a field name to the catalog field. "" clears a slot and
// resolves to nil; an unknown name is a validation error, a kind mismatch is
// left to the setter's silent-rejection rule.
func (s *Service) resolveField(dataset, name string) (*domain.Field, error) {
	if name == "" {
		return nil, nil
	}
	f := s.catalog.FieldByName(dataset, name)
	if f == nil {
		return nil, domain.ErrValidation("unknown field %q in dataset %q", name, dataset)
	}
	return f, nil
}
