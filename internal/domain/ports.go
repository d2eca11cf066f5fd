package domain

import "context"

// FieldCatalog exposes the dataset metadata store. Consumed read-only.
type FieldCatalog interface {
	DatasetNames() []string
	Fields(dataset string) []Field
}

// DataSource supplies deterministic categorical values for a dimension name.
type DataSource interface {
	CategoricalValues(dimensionName string) []string
}

// Store is the persistence adapter for dashboard documents and per-widget
// chart payloads. Failures must not corrupt in-memory state: callers keep a
// widget dirty until a save resolves successfully.
type Store interface {
	LoadDashboard(ctx context.Context) (*DashboardDocument, error)
	SaveDashboard(ctx context.Context, doc *DashboardDocument) error
	SaveWidget(ctx context.Context, payload *ChartSavePayload) error
}
