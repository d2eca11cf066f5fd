package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dash-demo/internal/domain"
)

func TestDrilldownRows_DeterministicBreakdown(t *testing.T) {
	w := salesWidget()
	rows := DrilldownRows(w.Chart, "North")
	require.Len(t, rows, 5)

	// charSum("North"+"Total Sales") = 1575, 1575 % 7 = 0.
	require.Equal(t, "North / Enterprise", rows[0].Detail)
	require.Equal(t, 650.0, rows[0].MeasureValue)
	require.Equal(t, "10.0%", rows[0].ContributionPct)
	require.Equal(t, domain.DrillStatusRisk, rows[0].Status)
	require.Equal(t, "Ops", rows[0].Owner)

	require.Equal(t, "North / SMB", rows[1].Detail)
	require.Equal(t, 1730.0, rows[1].MeasureValue)
	require.Equal(t, "26.7%", rows[1].ContributionPct)
	require.Equal(t, domain.DrillStatusWatch, rows[1].Status)

	require.Equal(t, []float64{1550, 1370, 1190}, []float64{
		rows[2].MeasureValue, rows[3].MeasureValue, rows[4].MeasureValue,
	})
	require.Equal(t, "HQ", rows[4].Owner)

	require.Equal(t, rows, DrilldownRows(w.Chart, "North"))
}

func TestDrilldownRows_StatusThresholdsAreStrict(t *testing.T) {
	w := salesWidget()
	for _, label := range []string{"North", "South", "West", "East", "Week 1", "UPI"} {
		rows := DrilldownRows(w.Chart, label)
		total := 0.0
		for _, r := range rows {
			total += r.MeasureValue
		}
		for _, r := range rows {
			share := r.MeasureValue / total
			switch {
			case share > 0.3:
				require.Equal(t, domain.DrillStatusHealthy, r.Status)
			case share < 0.18:
				require.Equal(t, domain.DrillStatusRisk, r.Status)
			default:
				require.Equal(t, domain.DrillStatusWatch, r.Status)
			}
		}
	}
}

func TestDrilldownRows_RequiresDimensionAndMeasure(t *testing.T) {
	w := domain.NewChartWidget("Sales")
	require.Nil(t, DrilldownRows(w.Chart, "North"))

	w.Chart.SetDimension(&regionField)
	require.Nil(t, DrilldownRows(w.Chart, "North"))

	w.Chart.SetMeasures([]domain.Field{salesField})
	require.NotNil(t, DrilldownRows(w.Chart, "North"))
}

func TestDrilldownPanelRowSpan(t *testing.T) {
	require.Equal(t, 5, DrilldownPanelRowSpan(3))
	require.Equal(t, 5, DrilldownPanelRowSpan(4))
	require.Equal(t, 6, DrilldownPanelRowSpan(5))
	require.Equal(t, 6, DrilldownPanelRowSpan(8))
	require.Equal(t, 7, DrilldownPanelRowSpan(9))
}
