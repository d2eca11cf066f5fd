package pipeline

import (
	"fmt"

	"dash-demo/internal/domain"
)

var (
	drilldownDetails = []string{"Enterprise", "SMB", "Retail", "Online", "Wholesale"}
	drilldownOwners  = []string{"Ops", "Sales", "Finance", "Regional", "HQ"}
)

// DrilldownRows derives the fixed five-row breakdown for a clicked chart
// point. The value spread is seeded by hashing the point label together with
// the primary measure name, so the same click always yields the same rows.
// Status thresholds are strict: share above 30% is Healthy, below 18% is
// Risk, anything on or between the bounds is Watch.
func DrilldownRows(c *domain.ChartConfig, pointLabel string) []domain.DrilldownRow {
	if c == nil || c.Dimension == nil || c.PrimaryMeasure() == nil {
		return nil
	}

	seedBase := charSum(pointLabel + c.PrimaryMeasure().Name)
	values := make([]float64, len(drilldownDetails))
	total := 0.0
	for i := range drilldownDetails {
		values[i] = float64(650 + ((seedBase+i*13)%7)*180)
		total += values[i]
	}

	rows := make([]domain.DrilldownRow, len(drilldownDetails))
	for i, detail := range drilldownDetails {
		v := values[i]
		status := domain.DrillStatusWatch
		if v > total*0.3 {
			status = domain.DrillStatusHealthy
		} else if v < total*0.18 {
			status = domain.DrillStatusRisk
		}
		rows[i] = domain.DrilldownRow{
			Detail:          pointLabel + " / " + detail,
			MeasureValue:    v,
			ContributionPct: fmt.Sprintf("%.1f%%", v/total*100),
			Status:          status,
			Owner:           drilldownOwners[i],
		}
	}
	return rows
}

// DrilldownPanelRowSpan sizes the spliced-in panel by its row count.
func DrilldownPanelRowSpan(rowCount int) int {
	switch {
	case rowCount <= 4:
		return 5
	case rowCount <= 8:
		return 6
	default:
		return 7
	}
}
