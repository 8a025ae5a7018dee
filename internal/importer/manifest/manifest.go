package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/pmiguelc/transita/internal/encoding"
	"github.com/pmiguelc/transita/internal/transfer"
)

// Parser reads inventory manifest CSV exports and produces item params for a
// transfer. It auto-detects which export format is being used by matching
// column headers against known profiles, and handles both comma and semicolon
// delimited files.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transfer.ItemParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching manifest format found: expected an item/quantity header")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks the delimiter by counting candidates in the first
// line. Semicolon wins ties because comma also appears inside quoted values.
func detectDelimiter(raw []byte) rune {
	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}

	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts items from data rows using the matched profile. Rows
// whose quantity cell is not a number (totals, footers) are skipped; a data
// row with a quantity but no item name is an error.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transfer.ItemParams, error) {
	itemIdx := cols[p.ItemCol]
	qtyIdx := cols[p.QtyCol]

	skuIdx := optionalCol(cols, p.SKUCol)
	unitIdx := optionalCol(cols, p.UnitCol)

	var items []transfer.ItemParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		qty, ok := parseQuantity(row, qtyIdx)
		if !ok {
			continue
		}

		name := cellValue(row, itemIdx)
		if name == "" {
			return nil, fmt.Errorf("row %d: missing item name", rowNum)
		}

		if qty <= 0 {
			return nil, fmt.Errorf("row %d: quantity must be positive", rowNum)
		}

		items = append(items, transfer.ItemParams{
			ItemName: name,
			SKU:      cellValue(row, skuIdx),
			Quantity: qty,
			Unit:     cellValue(row, unitIdx),
		})
	}

	return items, nil
}

func optionalCol(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	idx, ok := cols[name]
	if !ok {
		return -1
	}

	return idx
}

func parseQuantity(row []string, idx int) (int, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	qty, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return qty, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
