package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/pmiguelc/transita/internal/importer/manifest"
	"github.com/pmiguelc/transita/internal/transfer"
)

func TestParser_Standard(t *testing.T) {
	csv := `Item Name,SKU,Quantity,Unit
Monitor 24",MON-24,4,pcs
Docking Station,DOCK-7,2,pcs
Cat6 Cable,,20,m
`

	p := manifest.NewParser()
	items, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, transfer.ItemParams{ItemName: `Monitor 24"`, SKU: "MON-24", Quantity: 4, Unit: "pcs"}, items[0])
	assert.Equal(t, transfer.ItemParams{ItemName: "Cat6 Cable", Quantity: 20, Unit: "m"}, items[2])
}

func TestParser_WMSExport(t *testing.T) {
	// WMS exports carry a preamble before the header and a totals footer.
	csv := `Warehouse export - 2025-03-07;
Site;LIS-01

ARTICLE;REF;QTY;UOM
Office Chair;CHR-112;6;pcs
Standing Desk;DSK-009;3;pcs
Total 2 articles;;;
`

	p := manifest.NewParser()
	items, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Office Chair", items[0].ItemName)
	assert.Equal(t, "CHR-112", items[0].SKU)
	assert.Equal(t, 6, items[0].Quantity)
	assert.Equal(t, "pcs", items[0].Unit)
}

func TestParser_SkipsNonNumericRows(t *testing.T) {
	csv := `Item Name,SKU,Quantity,Unit
Monitor,MON-24,4,pcs
Subtotal,,see below,
`

	p := manifest.NewParser()
	items, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParser_MissingItemName(t *testing.T) {
	csv := `Item Name,SKU,Quantity,Unit
,MON-24,4,pcs
`

	p := manifest.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing item name")
}

func TestParser_NonPositiveQuantity(t *testing.T) {
	csv := `Item Name,SKU,Quantity,Unit
Monitor,MON-24,0,pcs
`

	p := manifest.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be positive")
}

func TestParser_UnknownFormat(t *testing.T) {
	csv := `foo,bar
1,2
`

	p := manifest.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParser_Windows1252Input(t *testing.T) {
	src := "Item Name,SKU,Quantity,Unit\nCafetière,KIT-019,3,pcs\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	p := manifest.NewParser()
	items, err := p.Parse(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafetière", items[0].ItemName)
}
