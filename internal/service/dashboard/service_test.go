package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"dash-demo/internal/catalog"
	"dash-demo/internal/domain"
	"dash-demo/internal/pipeline"
)

type fakeStore struct {
	doc     *domain.DashboardDocument
	loadErr error
	saveErr error

	savedWidgets []*domain.ChartSavePayload
	savedDoc     *domain.DashboardDocument
}

func (f *fakeStore) LoadDashboard(context.Context) (*domain.DashboardDocument, error) {
	return f.doc, f.loadErr
}

func (f *fakeStore) SaveDashboard(_ context.Context, doc *domain.DashboardDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedDoc = doc
	return nil
}

func (f *fakeStore) SaveWidget(_ context.Context, payload *domain.ChartSavePayload) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedWidgets = append(f.savedWidgets, payload)
	return nil
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	engine := pipeline.New(cat, catalog.MockSource{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cat, engine, store, logger)
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestService_SeedsDefaultDashboard(t *testing.T) {
	s := newTestService(t, &fakeStore{})

	page := s.CurrentPage()
	require.Len(t, page.Widgets, 1)
	w := page.Widgets[0]
	require.True(t, w.IsChart())
	require.Equal(t, domain.VisualPieDrilldown, w.Chart.VisualType)
	require.Equal(t, "Sales by Region", w.Chart.Title)
	require.Equal(t, 6, w.Placement.ColumnSpan)
	require.Equal(t, 4, w.Placement.RowSpan)
	require.False(t, s.IsDirty(w.ID))
}

func TestService_LoadFallsBackOnError(t *testing.T) {
	s := newTestService(t, &fakeStore{loadErr: errors.New("disk gone")})
	require.NoError(t, s.Load(context.Background()))

	page := s.CurrentPage()
	require.Len(t, page.Widgets, 1)
	require.Equal(t, "Sales by Region", page.Widgets[0].Chart.Title)
}

func TestService_AddChartWidget(t *testing.T) {
	s := newTestService(t, &fakeStore{})

	w, err := s.AddChartWidget("Transactions")
	require.NoError(t, err)
	require.True(t, s.IsDirty(w.ID))
	require.Equal(t, w.ID, s.SelectedWidgetID())
	require.True(t, s.EditMode())
	require.Len(t, s.CurrentPage().Widgets, 2)

	_, err = s.AddChartWidget("Nope")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestService_RemoveWidgetClearsState(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension: strp("Region"),
		Measures:  &[]string{"Total Sales"},
	})
	require.NoError(t, err)
	_, err = s.OpenDrilldown(w.ID, "North")
	require.NoError(t, err)
	require.NotNil(t, s.ActiveDrilldown())

	require.NoError(t, s.RemoveWidget(w.ID))
	require.False(t, s.IsDirty(w.ID))
	require.Equal(t, "", s.SelectedWidgetID())
	require.Nil(t, s.ActiveDrilldown())

	err = s.RemoveWidget(w.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestService_UpdateChartBindingsAndTitle(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension:    strp("Region"),
		Measures:     &[]string{"Total Sales"},
		Aggregations: map[string]string{"Total Sales": domain.AggAvg},
		Limit:        intp(25),
	})
	require.NoError(t, err)
	require.Equal(t, "Avg Total Sales by Region", w.Chart.Title)
	require.Equal(t, domain.MaxLimit, w.Chart.Limit)
	require.True(t, s.IsDirty(w.ID))

	// A measure name in the dimension slot is silently rejected.
	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{Dimension: strp("Profit Margin")})
	require.NoError(t, err)
	require.Equal(t, "Region", w.Chart.Dimension.Name)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{Dimension: strp("No Such Field")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{VisualType: strp("sunburst")})
	require.ErrorAs(t, err, &verr)
}

func TestService_UpdateChartUserTitleSticks(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{Title: strp("Revenue Board")})
	require.NoError(t, err)
	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension: strp("Region"),
		Measures:  &[]string{"Total Sales"},
	})
	require.NoError(t, err)
	require.Equal(t, "Revenue Board", w.Chart.Title)
}

func TestService_SaveWidgetLifecycle(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(t, store)
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	require.True(t, s.HasUnsavedChanges())

	require.NoError(t, s.SaveWidget(context.Background(), w.ID))
	require.False(t, s.IsDirty(w.ID))
	require.Len(t, store.savedWidgets, 1)
	require.Equal(t, w.ID, store.savedWidgets[0].ID)
}

func TestService_SaveFailureKeepsDirty(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("adapter down")}
	s := newTestService(t, store)
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	err = s.SaveWidget(context.Background(), w.ID)
	require.Error(t, err)
	require.True(t, s.IsDirty(w.ID))

	require.Error(t, s.Save(context.Background()))
	require.True(t, s.HasUnsavedChanges())
}

func TestService_SavePersistsDocumentAndClearsEditMode(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(t, store)
	_, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	require.True(t, s.EditMode())

	require.NoError(t, s.Save(context.Background()))
	require.False(t, s.HasUnsavedChanges())
	require.False(t, s.EditMode())
	require.NotNil(t, store.savedDoc)
	require.Equal(t, "My Dashboard", store.savedDoc.Name)
	require.Len(t, store.savedDoc.Pages, 1)
	require.Len(t, store.savedDoc.Pages[0].Widgets, 2)
}

func TestService_CloseEditor(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(t, store)
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	// Declined: changes stay dirty, editor closes anyway.
	require.NoError(t, s.CloseEditor(context.Background(), false))
	require.False(t, s.EditMode())
	require.True(t, s.IsDirty(w.ID))

	// Accepted: dirty charts flush through the same save path.
	require.NoError(t, s.CloseEditor(context.Background(), true))
	require.False(t, s.IsDirty(w.ID))
	require.Len(t, store.savedWidgets, 1)
}

func TestService_PagesAndDrilldownScoping(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	seed := s.CurrentPage().Widgets[0]
	_, err := s.UpdateChart(seed.ID, &UpdateChartRequest{VisualType: strp(domain.VisualColumn)})
	require.NoError(t, err)
	_, err = s.OpenDrilldown(seed.ID, "North")
	require.NoError(t, err)

	p2, err := s.AddPage("Page 2")
	require.NoError(t, err)
	require.NoError(t, s.ActivatePage(p2.ID))
	require.Nil(t, s.ActiveDrilldown())
	require.Empty(t, s.CurrentPage().Widgets)

	first := s.PageByID(s.Document().Pages[0].ID)
	require.NoError(t, s.ActivatePage(first.ID))
	dd := s.ActiveDrilldown()
	require.NotNil(t, dd)
	require.Equal(t, seed.ID, dd.SourceWidgetID)

	require.Error(t, s.ActivatePage("missing"))
	_, err = s.AddPage("")
	require.Error(t, err)
}

func TestService_OpenDrilldownState(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)

	_, err = s.OpenDrilldown(w.ID, "North")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension: strp("Region"),
		Measures:  &[]string{"Total Sales", "Profit Margin"},
	})
	require.NoError(t, err)

	dd, err := s.OpenDrilldown(w.ID, "North")
	require.NoError(t, err)
	require.Equal(t, "Region", dd.DimensionLabel)
	require.Equal(t, "Total Sales / Profit Margin", dd.MeasureLabel)
	require.Equal(t, domain.AggSum, dd.AggregationLabel)
	require.Len(t, dd.Rows, 5)
	// Seed widget spans 6 and this one 4, both pack into row 1.
	require.Equal(t, 1, dd.SourceRow)

	s.CloseDrilldown()
	require.Nil(t, s.ActiveDrilldown())
}

func TestService_FilterManagement(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	_, err := s.AddChartWidget("Invoices")
	require.NoError(t, err)

	// Seed (Sales) and Invoices share only the Region dimension.
	require.Equal(t, []string{"Region"}, s.CommonFilterColumns())

	require.NoError(t, s.SetFilters([]domain.PageFilter{{Column: "Region", Value: ""}}))
	require.Equal(t, domain.FilterValueAll, s.PageFilters()[0].Value)

	require.NoError(t, s.SetFilterValue("Region", "West"))
	require.Equal(t, "West", s.PageFilters()[0].Value)
	require.Error(t, s.SetFilterValue("City", "Pune"))

	require.Error(t, s.SetFilters([]domain.PageFilter{
		{Column: "Region", Value: "All"}, {Column: "Region", Value: "West"},
	}))

	s.RemoveFilter("Region")
	require.Empty(t, s.PageFilters())

	require.Equal(t, []string{"All", "North", "South", "West", "East"}, s.FilterOptions("Region"))
}

func TestService_FilterChangeDoesNotCloseDrilldown(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension: strp("Region"),
		Measures:  &[]string{"Total Sales"},
	})
	require.NoError(t, err)
	_, err = s.OpenDrilldown(w.ID, "North")
	require.NoError(t, err)

	require.NoError(t, s.SetFilters([]domain.PageFilter{{Column: "Region", Value: "West"}}))
	require.NotNil(t, s.ActiveDrilldown())
}

func TestService_IneligibleFilterWarning(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	_, err := s.AddChartWidget("Transactions")
	require.NoError(t, err)

	// Seed chart (Sales) is eligible for Region, the Transactions chart is not.
	require.True(t, s.ShowIneligibleFilterWarning("Region"))
	// A column no chart carries never warns.
	require.False(t, s.ShowIneligibleFilterWarning("City"))
}

func TestService_DocumentRoundTrip(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension:    strp("Region"),
		Measures:     &[]string{"Total Sales", "Profit Margin"},
		Aggregations: map[string]string{"Profit Margin": domain.AggMax},
		SortBy:       strp("Total Sales"),
		VisualType:   strp(domain.VisualBar),
		Limit:        intp(5),
	})
	require.NoError(t, err)
	txt := s.AddTextWidget()
	txt.Text.Content = "Quarterly notes"
	require.NoError(t, s.SetFilters([]domain.PageFilter{{Column: "Region", Value: "West"}}))

	doc := s.Document()

	s2 := newTestService(t, &fakeStore{doc: doc})
	require.NoError(t, s2.Load(context.Background()))
	require.Equal(t, doc, s2.Document())

	reloaded := s2.CurrentPage().WidgetByID(w.ID)
	require.NotNil(t, reloaded)
	require.Equal(t, "Region", reloaded.Chart.Dimension.Name)
	require.Equal(t, domain.AggMax, reloaded.Chart.AggregationFor("sm2"))
	require.Equal(t, "Total Sales", reloaded.Chart.SortBy.Name)
	require.False(t, s2.IsDirty(w.ID))
}

func TestService_EvaluateUsesPageFilters(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	_, err = s.UpdateChart(w.ID, &UpdateChartRequest{
		Dimension: strp("Region"),
		Measures:  &[]string{"Total Sales"},
		Limit:     intp(0),
	})
	require.NoError(t, err)

	require.NoError(t, s.SetFilters([]domain.PageFilter{{Column: "Region", Value: "West"}}))
	res, err := s.Evaluate(w.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"West"}, res.Categories)

	_, err = s.Evaluate("missing")
	require.Error(t, err)
}

func TestService_ReorderAndResizeMarkDirty(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	seed := s.CurrentPage().Widgets[0]
	w, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	require.NoError(t, s.SaveAllDirty(context.Background()))

	require.NoError(t, s.ReorderWidget(w.ID, seed.ID))
	require.Equal(t, w.ID, s.CurrentPage().Widgets[0].ID)
	require.True(t, s.IsDirty(w.ID))

	require.NoError(t, s.SaveAllDirty(context.Background()))
	require.NoError(t, s.ResizeWidget(seed.ID, 12, 2))
	require.Equal(t, 12, seed.Placement.ColumnSpan)
	require.True(t, s.IsDirty(seed.ID))

	require.Error(t, s.ReorderWidget("missing", seed.ID))
	require.Error(t, s.ResizeWidget("missing", 4, 4))
}

func TestService_Reset(t *testing.T) {
	s := newTestService(t, &fakeStore{})
	_, err := s.AddChartWidget("Sales")
	require.NoError(t, err)
	require.NoError(t, s.SetFilters([]domain.PageFilter{{Column: "Region", Value: "West"}}))

	s.Reset()
	require.Empty(t, s.CurrentPage().Widgets)
	require.Empty(t, s.PageFilters())
	require.False(t, s.HasUnsavedChanges())
	require.False(t, s.EditMode())
}
