package catalog

// MockSource returns the fixed categorical values used by the demo datasets.
// Values are keyed by dimension name so every dataset with a "Region" column
// shares the same members.
type MockSource struct{}

var categoricalValues = map[string][]string{
	"Region":        {"North", "South", "West", "East"},
	"Store Name":    {"Store A", "Store B", "Store C", "Store D"},
	"Billing Date":  {"Week 1", "Week 2", "Week 3", "Week 4"},
	"Customer Name": {"Acme Ltd", "Nova LLC", "Pioneer Co", "BluePeak"},
	"TX Type":       {"UPI", "Card", "Bank", "Wallet"},
}

var fallbackValues = []string{"Segment A", "Segment B", "Segment C", "Segment D"}

// CategoricalValues returns the member list for a dimension. Unknown
// dimensions get a generic segment breakdown rather than an empty chart.
func (MockSource) CategoricalValues(dimensionName string) []string {
	if vals, ok := categoricalValues[dimensionName]; ok {
		return append([]string(nil), vals...)
	}
	return append([]string(nil), fallbackValues...)
}
