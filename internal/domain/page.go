package domain

// Page owns an ordered widget list and remembers at most one open drilldown.
// Exactly one page is current at any time; the dashboard swaps widget lists
// when switching.
type Page struct {
	ID        string
	Name      string
	Widgets   []*Widget
	Drilldown *DrilldownState
}

// NewPage creates an empty named page.
func NewPage(name string) *Page {
	return &Page{ID: NewID(), Name: name}
}

// WidgetByID returns the widget with the given id, or nil.
func (p *Page) WidgetByID(id string) *Widget {
	for _, w := range p.Widgets {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// IndexOf returns the position of the widget in the page order, or -1.
func (p *Page) IndexOf(id string) int {
	for i, w := range p.Widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// RemoveWidget splices the widget out of the page order. It reports whether
// a widget was removed.
func (p *Page) RemoveWidget(id string) bool {
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	p.Widgets = append(p.Widgets[:i], p.Widgets[i+1:]...)
	return true
}

// MoveWidget splices the widget out of the order and reinserts it at the
// target widget's index. The target index is taken from the order before the
// splice, so a forward move lands exactly on the target's slot. It reports
// whether the order changed; unknown ids and self-targets are no-ops.
func (p *Page) MoveWidget(id, targetID string) bool {
	if id == targetID {
		return false
	}
	from := p.IndexOf(id)
	to := p.IndexOf(targetID)
	if from < 0 || to < 0 {
		return false
	}
	w := p.Widgets[from]
	p.Widgets = append(p.Widgets[:from], p.Widgets[from+1:]...)
	p.Widgets = append(p.Widgets[:to], append([]*Widget{w}, p.Widgets[to:]...)...)
	return true
}

// ChartWidgets returns the page's chart widgets in order.
func (p *Page) ChartWidgets() []*Widget {
	var charts []*Widget
	for _, w := range p.Widgets {
		if w.IsChart() {
			charts = append(charts, w)
		}
	}
	return charts
}
