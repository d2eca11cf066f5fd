// Package dashboard holds the editing model for one dashboard: page and
// widget composition, dirty tracking, page filters, the drilldown state
// machine, and save orchestration against the persistence adapter.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"dash-demo/internal/catalog"
	"dash-demo/internal/domain"
	"dash-demo/internal/layout"
	"dash-demo/internal/pipeline"
)

// Service is the single mutable dashboard aggregate. All operations take the
// mutex; the interaction model is one logical actor at a time, the lock only
// guards against concurrent HTTP callers.
type Service struct {
	catalog *catalog.Catalog
	engine  *pipeline.Engine
	store   domain.Store
	logger  *slog.Logger

	mu         sync.Mutex
	name       string
	pages      []*domain.Page
	currentIdx int
	filters    []domain.PageFilter
	dirty      map[string]bool
	selectedID string
	editMode   bool
	session    layout.Session
}

// New builds an empty service; call Load to hydrate from the store.
func New(cat *catalog.Catalog, engine *pipeline.Engine, store domain.Store, logger *slog.Logger) *Service {
	s := &Service{
		catalog: cat,
		engine:  engine,
		store:   store,
		logger:  logger,
		dirty:   map[string]bool{},
	}
	s.seedDefault()
	return s
}

// seedDefault installs the first-run dashboard: one page carrying the
// pie-drilldown overview chart, saved state (not dirty).
func (s *Service) seedDefault() {
	w := domain.NewChartWidget("Sales")
	w.Placement = domain.Placement{ColumnSpan: 6, RowSpan: 4}
	w.Chart.SetVisualType(domain.VisualPieDrilldown)
	w.Chart.SetDimension(s.catalog.FieldByID("Sales", "s2"))
	if m := s.catalog.FieldByID("Sales", "sm1"); m != nil {
		w.Chart.SetMeasures([]domain.Field{*m})
	}
	w.Chart.Title = "Sales by Region"

	page := domain.NewPage("Page 1")
	page.Widgets = []*domain.Widget{w}

	s.name = "My Dashboard"
	s.pages = []*domain.Page{page}
	s.currentIdx = 0
	s.filters = nil
	s.dirty = map[string]bool{}
	s.selectedID = ""
	s.editMode = false
}

// Load replaces the in-memory state with the stored dashboard. A failed or
// empty load falls back to the seeded default rather than a blank canvas.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.store.LoadDashboard(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || doc == nil || len(doc.Pages) == 0 {
		if err != nil {
			s.logger.Warn("dashboard load failed, using default", "error", err)
		}
		s.seedDefault()
		return nil
	}
	s.hydrate(doc)
	return nil
}

// CurrentPage returns the active page.
func (s *Service) CurrentPage() *domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[s.currentIdx]
}

func (s *Service) currentPage() *domain.Page { return s.pages[s.currentIdx] }

// PageByID returns a page by id, or nil.
func (s *Service) PageByID(id string) *domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPage appends a new empty page without activating it.
func (s *Service) AddPage(name string) (*domain.Page, error) {
	if name == "" {
		return nil, domain.ErrValidation("page name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.NewPage(name)
	s.pages = append(s.pages, p)
	return p, nil
}

// ActivatePage makes the given page current. The outgoing page keeps its own
// widget list and drilldown state; the target's are swapped in as-is.
func (s *Service) ActivatePage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pages {
		if p.ID == id {
			if i != s.currentIdx {
				s.currentIdx = i
				s.selectedID = ""
			}
			return nil
		}
	}
	return domain.ErrNotFound("page %s not found", id)
}

// AddChartWidget creates a chart on the current page with editor defaults,
// selects it, marks it dirty, and opens the editor panel.
func (s *Service) AddChartWidget(dataset string) (*domain.Widget, error) {
	if s.catalog.Fields(dataset) == nil {
		return nil, domain.ErrValidation("unknown dataset %q", dataset)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w := domain.NewChartWidget(dataset)
	s.currentPage().Widgets = append(s.currentPage().Widgets, w)
	s.dirty[w.ID] = true
	s.selectedID = w.ID
	s.editMode = true
	return w, nil
}

// AddTextWidget creates a text block on the current page. Text widgets are
// never dirty-tracked.
func (s *Service) AddTextWidget() *domain.Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := domain.NewTextWidget()
	s.currentPage().Widgets = append(s.currentPage().Widgets, w)
	s.selectedID = w.ID
	s.editMode = true
	return w
}

// RemoveWidget deletes a widget from the current page, clearing selection,
// its dirty flag, and the drilldown if the widget was its source. No save is
// required to forget a dirty widget.
func (s *Service) RemoveWidget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := s.currentPage()
	if !page.RemoveWidget(id) {
		return domain.ErrNotFound("widget %s not found", id)
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	if page.Drilldown != nil && page.Drilldown.SourceWidgetID == id {
		page.Drilldown = nil
	}
	delete(s.dirty, id)
	return nil
}

// SelectWidget marks a widget as the editor target.
func (s *Service) SelectWidget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage().WidgetByID(id) == nil {
		return domain.ErrNotFound("widget %s not found", id)
	}
	s.selectedID = id
	return nil
}

// SelectedWidgetID returns the current editor target, or "".
func (s *Service) SelectedWidgetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// ReorderWidget moves a widget to the target widget's index, as when a drag
// is dropped on it. A moved chart becomes dirty.
func (s *Service) ReorderWidget(id, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := s.currentPage()
	w := page.WidgetByID(id)
	if w == nil {
		return domain.ErrNotFound("widget %s not found", id)
	}
	if targetID != "" && page.WidgetByID(targetID) == nil {
		return domain.ErrNotFound("widget %s not found", targetID)
	}
	if page.MoveWidget(id, targetID) && w.IsChart() {
		s.dirty[w.ID] = true
	}
	return nil
}

// ResizeWidget applies a new grid footprint. Spans clamp at the setters; a
// resized chart becomes dirty.
func (s *Service) ResizeWidget(id string, columnSpan, rowSpan int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.currentPage().WidgetByID(id)
	if w == nil {
		return domain.ErrNotFound("widget %s not found", id)
	}
	w.SetColumnSpan(columnSpan)
	w.SetRowSpan(rowSpan)
	if w.IsChart() {
		s.dirty[w.ID] = true
	}
	return nil
}

// Evaluate runs the query pipeline for one widget of the current page under
// the dashboard's page filters.
func (s *Service) Evaluate(id string) (pipeline.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.currentPage().WidgetByID(id)
	if w == nil {
		return pipeline.Result{}, domain.ErrNotFound("widget %s not found", id)
	}
	return s.engine.Evaluate(w, s.filters), nil
}

// RowMap exposes the current page's grid packing.
func (s *Service) RowMap() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return layout.RowMap(s.currentPage().Widgets)
}

// IsDirty reports whether a chart has unsaved changes.
func (s *Service) IsDirty(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[id]
}

// HasUnsavedChanges reports whether any chart is dirty.
func (s *Service) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

// DirtyWidgetIDs returns the dirty chart ids, sorted for stable output.
func (s *Service) DirtyWidgetIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EditMode reports whether the editor panel is open.
func (s *Service) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// SaveWidget persists one chart's payload. The dirty flag clears only on
// adapter success; a failed save leaves it set and returns the error.
func (s *Service) SaveWidget(ctx context.Context, id string) error {
	s.mu.Lock()
	w := s.widgetOnAnyPage(id)
	if w == nil {
		s.mu.Unlock()
		return domain.ErrNotFound("widget %s not found", id)
	}
	payload, err := domain.BuildChartPayload(w)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.store.SaveWidget(ctx, payload); err != nil {
		return fmt.Errorf("save widget %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.dirty, id)
	s.mu.Unlock()
	return nil
}

// SaveAllDirty persists every dirty chart, clearing flags per successful
// widget. The first failure stops the pass and is returned.
func (s *Service) SaveAllDirty(ctx context.Context) error {
	for _, id := range s.DirtyWidgetIDs() {
		if err := s.SaveWidget(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Save persists the whole dashboard document plus every dirty chart payload,
// then leaves edit mode. In-memory state is untouched on failure.
func (s *Service) Save(ctx context.Context) error {
	if err := s.SaveAllDirty(ctx); err != nil {
		return err
	}
	doc := s.Document()
	if err := s.store.SaveDashboard(ctx, doc); err != nil {
		return fmt.Errorf("save dashboard: %w", err)
	}
	s.mu.Lock()
	s.editMode = false
	s.mu.Unlock()
	return nil
}

// CloseEditor leaves edit mode. With unsaved changes the caller decides via
// saveChanges whether to flush them first; declined changes stay dirty.
func (s *Service) CloseEditor(ctx context.Context, saveChanges bool) error {
	var saveErr error
	if saveChanges && s.HasUnsavedChanges() {
		saveErr = s.SaveAllDirty(ctx)
	}
	s.mu.Lock()
	s.editMode = false
	s.selectedID = ""
	s.mu.Unlock()
	return saveErr
}

func (s *Service) widgetOnAnyPage(id string) *domain.Widget {
	for _, p := range s.pages {
		if w := p.WidgetByID(id); w != nil {
			return w
		}
	}
	return nil
}

// RestoreDefault discards the current state and reinstalls the first-run
// dashboard.
func (s *Service) RestoreDefault() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedDefault()
	s.session = layout.Session{}
}

// Reset clears the dashboard back to a single empty page with no filters,
// selection, or dirty state.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := domain.NewPage("Page 1")
	s.pages = []*domain.Page{page}
	s.currentIdx = 0
	s.filters = nil
	s.dirty = map[string]bool{}
	s.selectedID = ""
	s.editMode = false
	s.session = layout.Session{}
}
