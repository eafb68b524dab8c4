package invoicefile_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpot-app/stockpot/internal/invoicefile"
)

func TestCSVParser_SkipsPreambleAndParsesRows(t *testing.T) {
	input := strings.Join([]string{
		"Fresh Produce Wholesale Ltd",
		"Invoice 2025-0042,,,",
		"",
		"Item Code,Description,Ordered,Received,Unit Price,Unit",
		"TOM-01,Roma Tomatoes,10,8,2.50,kg",
		"ON-02,Yellow Onions,5,5,1.10,kg",
		",,,,,",
	}, "\n")

	items, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "TOM-01", items[0].ItemCode)
	assert.Equal(t, "Roma Tomatoes", items[0].Description)
	assert.True(t, items[0].QuantityOrdered.Equal(decimal.NewFromInt(10)))
	assert.True(t, items[0].QuantityReceived.Equal(decimal.NewFromInt(8)))
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, "kg", items[0].UnitOfMeasure)

	assert.Equal(t, "ON-02", items[1].ItemCode)
	assert.True(t, items[1].QuantityReceived.Equal(decimal.NewFromInt(5)))
}

func TestCSVParser_SingleQuantityColumnStandsInForBoth(t *testing.T) {
	input := strings.Join([]string{
		"SKU,Product,Qty,Price",
		"A1,Olive Oil,3,12.00",
	}, "\n")

	items, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, items[0].QuantityOrdered.Equal(decimal.NewFromInt(3)))
	assert.True(t, items[0].QuantityReceived.Equal(decimal.NewFromInt(3)))
}

func TestCSVParser_OrderedWithoutReceivedAssumesFullDelivery(t *testing.T) {
	input := strings.Join([]string{
		"Code,Description,Qty Ordered,Unit Cost",
		"B2,Basmati Rice,4,9.80",
	}, "\n")

	items, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, items[0].QuantityOrdered.Equal(decimal.NewFromInt(4)))
	assert.True(t, items[0].QuantityReceived.Equal(decimal.NewFromInt(4)))
}

func TestCSVParser_AmountFormats(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "plain", cell: "1234.56", want: "1234.56"},
		{name: "thousands comma", cell: `"1,234.56"`, want: "1234.56"},
		{name: "european", cell: `"1.234,56"`, want: "1234.56"},
		{name: "currency prefix", cell: "$4.20", want: "4.20"},
		{name: "euro prefix", cell: "€7.15", want: "7.15"},
		{name: "blank", cell: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Description,Qty,Unit Price\nWidget,1," + tt.cell + "\n"

			items, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, items, 1)

			assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", items[0].UnitPrice, tt.want)
		})
	}
}

func TestCSVParser_NoHeaderRow(t *testing.T) {
	input := strings.Join([]string{
		"some,random,cells",
		"1,2,3",
	}, "\n")

	_, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no invoice header row")
}

func TestCSVParser_BadAmountReportsRowNumber(t *testing.T) {
	input := strings.Join([]string{
		"Description,Qty,Unit Price",
		"Flour,2,4.00",
		"Sugar,1,not-a-number",
	}, "\n")

	_, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestCSVParser_MissingCodeLeavesItBlank(t *testing.T) {
	input := strings.Join([]string{
		"Description,Qty,Price",
		"Mystery Crate,1,30.00",
	}, "\n")

	items, err := invoicefile.NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ItemCode)
}
