package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dash-demo/internal/domain"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"Invoices", "Sales", "Transactions"}, c.DatasetNames())

	sales := c.Fields("Sales")
	require.Len(t, sales, 5)
	require.Equal(t, "Category", sales[0].Name)
	require.True(t, sales[0].IsDimension())
	require.Equal(t, "Total Sales", sales[3].Name)
	require.True(t, sales[3].IsMeasure())

	require.Len(t, c.Fields("Invoices"), 17)
	require.Nil(t, c.Fields("Unknown"))
}

func TestCatalog_FieldLookups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	f := c.FieldByID("Sales", "sm2")
	require.NotNil(t, f)
	require.Equal(t, "Profit Margin", f.Name)

	f = c.FieldByName("Transactions", "Amount")
	require.NotNil(t, f)
	require.Equal(t, "tm1", f.ID)
	require.Equal(t, domain.FieldKindMeasure, f.Kind)

	require.Nil(t, c.FieldByID("Sales", "nope"))
	require.Nil(t, c.FieldByName("Nope", "Region"))
}

func TestCatalog_DimensionNames(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"Category", "Region", "Store Name"}, c.DimensionNames("Sales"))
	require.Equal(t, []string{"TX Type", "Merchant"}, c.DimensionNames("Transactions"))
}

func TestParse_RejectsBadCatalogs(t *testing.T) {
	_, err := parse([]byte("datasets: []"))
	require.Error(t, err)

	_, err = parse([]byte(`
datasets:
  - name: A
    fields: [{ id: x1, name: X, kind: metric }]
`))
	require.Error(t, err)

	_, err = parse([]byte(`
datasets:
  - name: A
    fields: [{ id: x1, name: X, kind: dimension }]
  - name: A
    fields: [{ id: x2, name: Y, kind: measure }]
`))
	require.Error(t, err)
}

func TestMockSource_CategoricalValues(t *testing.T) {
	var src MockSource
	require.Equal(t, []string{"North", "South", "West", "East"}, src.CategoricalValues("Region"))
	require.Equal(t, []string{"UPI", "Card", "Bank", "Wallet"}, src.CategoricalValues("TX Type"))
	require.Equal(t, []string{"Segment A", "Segment B", "Segment C", "Segment D"}, src.CategoricalValues("Merchant"))
}
