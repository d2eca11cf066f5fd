// Package repository implements the dashboard persistence adapter over the
// SQLite store. The dashboard serializes into normalized page/widget rows;
// widget configs travel as the name-based JSON wire payloads.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dash-demo/internal/domain"
)

const (
	widgetKindChart = "chart"
	widgetKindText  = "text"
)

// DashboardRepo persists the single dashboard document and per-widget chart
// payload saves.
type DashboardRepo struct {
	writeDB *sql.DB
	readDB  *sql.DB
}

// NewDashboardRepo wires the repository over the write/read pool pair.
func NewDashboardRepo(writeDB, readDB *sql.DB) *DashboardRepo {
	return &DashboardRepo{writeDB: writeDB, readDB: readDB}
}

var _ domain.Store = (*DashboardRepo)(nil)

// LoadDashboard reads the stored document, or (nil, nil) when none has been
// saved yet so the caller can seed a default.
func (r *DashboardRepo) LoadDashboard(ctx context.Context) (*domain.DashboardDocument, error) {
	doc := &domain.DashboardDocument{}
	err := r.readDB.QueryRowContext(ctx, `SELECT name FROM dashboards WHERE id = 1`).Scan(&doc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	pageRows, err := r.readDB.QueryContext(ctx,
		`SELECT id, name FROM pages WHERE dashboard_id = 1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	defer pageRows.Close()

	for pageRows.Next() {
		var pd domain.PageDocument
		if err := pageRows.Scan(&pd.ID, &pd.Name); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		doc.Pages = append(doc.Pages, pd)
	}
	if err := pageRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}

	for i := range doc.Pages {
		widgets, err := r.loadWidgets(ctx, doc.Pages[i].ID)
		if err != nil {
			return nil, err
		}
		doc.Pages[i].Widgets = widgets
	}

	filters, err := r.loadFilters(ctx)
	if err != nil {
		return nil, err
	}
	doc.PageFilters = filters

	return doc, nil
}

func (r *DashboardRepo) loadWidgets(ctx context.Context, pageID string) ([]domain.WidgetDocument, error) {
	rows, err := r.readDB.QueryContext(ctx,
		`SELECT kind, config FROM widgets WHERE page_id = ? ORDER BY position`, pageID)
	if err != nil {
		return nil, fmt.Errorf("load widgets for page %s: %w", pageID, err)
	}
	defer rows.Close()

	var widgets []domain.WidgetDocument
	for rows.Next() {
		var kind, config string
		if err := rows.Scan(&kind, &config); err != nil {
			return nil, fmt.Errorf("scan widget: %w", err)
		}
		var wd domain.WidgetDocument
		switch kind {
		case widgetKindChart:
			var payload domain.ChartSavePayload
			if err := json.Unmarshal([]byte(config), &payload); err != nil {
				return nil, fmt.Errorf("decode chart config: %w", err)
			}
			wd.Chart = &payload
		case widgetKindText:
			var payload domain.TextSavePayload
			if err := json.Unmarshal([]byte(config), &payload); err != nil {
				return nil, fmt.Errorf("decode text config: %w", err)
			}
			wd.Text = &payload
		default:
			return nil, fmt.Errorf("unknown widget kind %q on page %s", kind, pageID)
		}
		widgets = append(widgets, wd)
	}
	return widgets, rows.Err()
}

func (r *DashboardRepo) loadFilters(ctx context.Context) ([]domain.PageFilter, error) {
	rows, err := r.readDB.QueryContext(ctx,
		`SELECT column_name, value FROM page_filters WHERE dashboard_id = 1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load page filters: %w", err)
	}
	defer rows.Close()

	var filters []domain.PageFilter
	for rows.Next() {
		var f domain.PageFilter
		if err := rows.Scan(&f.Column, &f.Value); err != nil {
			return nil, fmt.Errorf("scan page filter: %w", err)
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}

// SaveDashboard replaces the stored document in one transaction. Pages and
// widgets are rewritten wholesale; the dashboard row upserts in place.
func (r *DashboardRepo) SaveDashboard(ctx context.Context, doc *domain.DashboardDocument) error {
	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save dashboard: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dashboards (id, name, updated_at) VALUES (1, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		doc.Name)
	if err != nil {
		return fmt.Errorf("upsert dashboard: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE dashboard_id = 1`); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM page_filters WHERE dashboard_id = 1`); err != nil {
		return fmt.Errorf("clear page filters: %w", err)
	}

	for pos, page := range doc.Pages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pages (id, dashboard_id, name, position) VALUES (?, 1, ?, ?)`,
			page.ID, page.Name, pos); err != nil {
			return fmt.Errorf("insert page %s: %w", page.ID, err)
		}
		for wpos, wd := range page.Widgets {
			kind, id, config, err := encodeWidget(wd)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO widgets (id, page_id, position, kind, config) VALUES (?, ?, ?, ?, ?)`,
				id, page.ID, wpos, kind, config); err != nil {
				return fmt.Errorf("insert widget %s: %w", id, err)
			}
		}
	}

	for pos, f := range doc.PageFilters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO page_filters (dashboard_id, column_name, value, position) VALUES (1, ?, ?, ?)`,
			f.Column, f.Value, pos); err != nil {
			return fmt.Errorf("insert page filter %s: %w", f.Column, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save dashboard: %w", err)
	}
	return nil
}

func encodeWidget(wd domain.WidgetDocument) (kind, id, config string, err error) {
	switch {
	case wd.Chart != nil:
		raw, err := json.Marshal(wd.Chart)
		if err != nil {
			return "", "", "", fmt.Errorf("encode chart config: %w", err)
		}
		return widgetKindChart, wd.Chart.ID, string(raw), nil
	case wd.Text != nil:
		raw, err := json.Marshal(wd.Text)
		if err != nil {
			return "", "", "", fmt.Errorf("encode text config: %w", err)
		}
		return widgetKindText, wd.Text.ID, string(raw), nil
	default:
		return "", "", "", domain.ErrValidation("widget document has neither chart nor text")
	}
}

// SaveWidget upserts one chart's wire payload, the per-widget save path used
// by dirty-chart flushes.
func (r *DashboardRepo) SaveWidget(ctx context.Context, payload *domain.ChartSavePayload) error {
	if payload.ID == "" {
		return domain.ErrValidation("chart payload is missing an id")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode chart payload: %w", err)
	}
	_, err = r.writeDB.ExecContext(ctx, `
		INSERT INTO widget_saves (widget_id, payload, saved_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(widget_id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		payload.ID, string(raw))
	if err != nil {
		return fmt.Errorf("save widget %s: %w", payload.ID, err)
	}
	return nil
}

// LoadWidgetSave reads back one saved chart payload, or (nil, nil) when the
// widget has never been saved.
func (r *DashboardRepo) LoadWidgetSave(ctx context.Context, widgetID string) (*domain.ChartSavePayload, error) {
	var raw string
	err := r.readDB.QueryRowContext(ctx,
		`SELECT payload FROM widget_saves WHERE widget_id = ?`, widgetID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load widget save %s: %w", widgetID, err)
	}
	var payload domain.ChartSavePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode widget save %s: %w", widgetID, err)
	}
	return &payload, nil
}
