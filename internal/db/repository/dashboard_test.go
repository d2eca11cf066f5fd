package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"dash-demo/internal/db"
	"dash-demo/internal/domain"
)

func strp(s string) *string { return &s }

func sampleDocument() *domain.DashboardDocument {
	return &domain.DashboardDocument{
		Name: "Revenue Overview",
		Pages: []domain.PageDocument{
			{
				ID:   "page-1",
				Name: "Page 1",
				Widgets: []domain.WidgetDocument{
					{Chart: &domain.ChartSavePayload{
						ID:                    "w-1",
						Title:                 "Total Sales by Region",
						VisualType:            domain.VisualColumn,
						Dimension:             strp("Region"),
						PrimaryMeasure:        strp("Total Sales"),
						Measures:              []string{"Total Sales"},
						Aggregation:           domain.AggSum,
						AggregationPerMeasure: map[string]string{"Total Sales": domain.AggSum},
						LabelPosition:         domain.LabelBottom,
						Width:                 6,
						Height:                4,
						Dataset:               "Sales",
						Limit:                 4,
						DataLabelMode:         domain.DataLabelShowValues,
					}},
					{Text: &domain.TextSavePayload{
						ID:       "w-2",
						Content:  "Quarterly notes",
						FontSize: 14,
						Color:    "#1e293b",
						Width:    4,
						Height:   3,
					}},
				},
			},
			{ID: "page-2", Name: "Page 2"},
		},
		PageFilters: []domain.PageFilter{
			{Column: "Region", Value: "West"},
			{Column: "Store Name", Value: domain.FilterValueAll},
		},
	}
}

func newRepo(t *testing.T) *DashboardRepo {
	t.Helper()
	writeDB, readDB := db.OpenTestSQLite(t)
	return NewDashboardRepo(writeDB, readDB)
}

func TestDashboardRepo_EmptyLoad(t *testing.T) {
	repo := newRepo(t)
	doc, err := repo.LoadDashboard(context.Background())
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestDashboardRepo_SaveLoadRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	want := sampleDocument()
	require.NoError(t, repo.SaveDashboard(ctx, want))

	got, err := repo.LoadDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDashboardRepo_SaveReplacesWholesale(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDashboard(ctx, sampleDocument()))

	next := &domain.DashboardDocument{
		Name: "Renamed",
		Pages: []domain.PageDocument{
			{ID: "page-3", Name: "Only Page"},
		},
	}
	require.NoError(t, repo.SaveDashboard(ctx, next))

	got, err := repo.LoadDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Len(t, got.Pages, 1)
	require.Equal(t, "page-3", got.Pages[0].ID)
	require.Empty(t, got.PageFilters)
}

func TestDashboardRepo_WidgetOrderPreserved(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	doc := sampleDocument()
	require.NoError(t, repo.SaveDashboard(ctx, doc))

	got, err := repo.LoadDashboard(ctx)
	require.NoError(t, err)
	require.Len(t, got.Pages[0].Widgets, 2)
	require.NotNil(t, got.Pages[0].Widgets[0].Chart)
	require.NotNil(t, got.Pages[0].Widgets[1].Text)
	require.Equal(t, []domain.PageFilter{
		{Column: "Region", Value: "West"},
		{Column: "Store Name", Value: "All"},
	}, got.PageFilters)
}

func TestDashboardRepo_SaveWidgetUpsert(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	payload := &domain.ChartSavePayload{
		ID:          "w-9",
		Title:       "Amount by TX Type",
		VisualType:  domain.VisualBar,
		Dataset:     "Transactions",
		Aggregation: domain.AggSum,
		Measures:    []string{"Amount"},
	}
	require.NoError(t, repo.SaveWidget(ctx, payload))

	payload.Title = "Amount by Merchant"
	require.NoError(t, repo.SaveWidget(ctx, payload))

	got, err := repo.LoadWidgetSave(ctx, "w-9")
	require.NoError(t, err)
	require.Equal(t, "Amount by Merchant", got.Title)

	missing, err := repo.LoadWidgetSave(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	err = repo.SaveWidget(ctx, &domain.ChartSavePayload{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
