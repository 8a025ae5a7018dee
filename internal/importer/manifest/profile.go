package manifest

// Profile describes the column layout of one manifest export format.
// Supporting a new warehouse system is adding a Profile to the profiles slice.
type Profile struct {
	Name    string
	ItemCol string
	QtyCol  string
	SKUCol  string // optional, may be absent from the file
	UnitCol string // optional, may be absent from the file
}

// requiredCols returns the columns that must be present for this profile to
// match a header row.
func (p Profile) requiredCols() []string {
	return []string{p.ItemCol, p.QtyCol}
}

// profiles is the ordered list of manifest formats to try during
// auto-detection. More specific profiles come first.
var profiles = []Profile{
	{
		Name:    "wms",
		ItemCol: "ARTICLE",
		QtyCol:  "QTY",
		SKUCol:  "REF",
		UnitCol: "UOM",
	},
	{
		Name:    "standard",
		ItemCol: "Item Name",
		QtyCol:  "Quantity",
		SKUCol:  "SKU",
		UnitCol: "Unit",
	},
}
