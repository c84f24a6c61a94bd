package ingest

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nacora/cargo-analytics/internal/country"
)

// TargetSheets are the shipment-ledger sheets of interest; all other
// sheets in the workbook are ignored.
var TargetSheets = []string{"Seafreight excl. APEX", "Airfreight excl. APEX"}

// Business-line markers that identify the first data row of a sheet.
var lineMarkers = []string{"Air Logistics", "Sea Logistics"}

const (
	labelCol     = 1 // business-line label column
	countryCol   = 2 // country column
	firstTimeCol = 5 // first candidate period column
)

// ShipmentTable holds the raw cell grids of the target sheets, keyed by
// sheet name, in TargetSheets order.
type ShipmentTable struct {
	sheets map[string][][]string
}

// timeColumn ties a column index to the (year, month) period it carries.
type timeColumn struct {
	col   int
	year  int
	month int
}

// ExtractShipmentTable reads the target sheets of a shipment workbook
// into raw grids. Missing sheets are skipped; a workbook with none of the
// target sheets yields an empty table, not an error.
func ExtractShipmentTable(r io.Reader) (*ShipmentTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &ShipmentTable{sheets: make(map[string][][]string)}
	for _, name := range TargetSheets {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			continue
		}
		t.sheets[name] = rows
	}
	return t, nil
}

// DeriveShipments turns the raw sheets into shipment records using the
// given normalizer. Rows or cells failing required-field checks are
// silently skipped.
func DeriveShipments(t *ShipmentTable, norm *country.Normalizer) []ShipmentRecord {
	var records []ShipmentRecord
	for _, name := range TargetSheets {
		rows, ok := t.sheets[name]
		if !ok {
			continue
		}
		records = append(records, deriveSheet(rows, norm)...)
	}
	return records
}

func deriveSheet(rows [][]string, norm *country.Normalizer) []ShipmentRecord {
	boundary := dataBoundary(rows)
	if boundary < 2 {
		// No marker, or no room above it for the year/month header rows:
		// the sheet is skipped, parse continues with others.
		return nil
	}

	timeColumns := scanTimeColumns(rows[boundary-2], rows[boundary-1])
	if len(timeColumns) == 0 {
		return nil
	}

	var records []ShipmentRecord
	for i := boundary; i < len(rows); i++ {
		row := rows[i]
		label := cellAt(row, labelCol)
		rawCountry := cellAt(row, countryCol)
		if label == "" || rawCountry == "" {
			continue
		}

		businessUnit := StandardizeBusinessUnit(label)
		c := norm.Normalize(rawCountry)
		region := country.Region(c)

		for _, tc := range timeColumns {
			value := cellAt(row, tc.col)
			if value == "" {
				continue
			}
			count, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(count) || count == 0 {
				// Zero cells carry no volume; emitting them would only
				// pad the join with empty records.
				continue
			}
			records = append(records, ShipmentRecord{
				Country:       c,
				BusinessUnit:  businessUnit,
				MonthKey:      fmt.Sprintf("%04d-%02d", tc.year, tc.month),
				ShipmentCount: int(count),
				Region:        region,
			})
		}
	}
	return records
}

// dataBoundary returns the index of the first row whose label column
// contains a recognized business-line marker, or -1.
func dataBoundary(rows [][]string) int {
	for i, row := range rows {
		label := cellAt(row, labelCol)
		for _, marker := range lineMarkers {
			if strings.Contains(label, marker) {
				return i
			}
		}
	}
	return -1
}

// scanTimeColumns walks the sparse two-row time header. A year value
// persists across subsequent columns until a new one appears; every
// column from firstTimeCol onward with a month value and a known year
// becomes a period column.
func scanTimeColumns(yearRow, monthRow []string) []timeColumn {
	var cols []timeColumn
	year := 0
	width := len(yearRow)
	if len(monthRow) > width {
		width = len(monthRow)
	}
	for col := firstTimeCol; col < width; col++ {
		if y, ok := parseWhole(cellAt(yearRow, col)); ok && y > 0 {
			year = y
		}
		if year == 0 {
			continue
		}
		month, ok := parseWhole(cellAt(monthRow, col))
		if !ok || month < 1 || month > 12 {
			continue
		}
		cols = append(cols, timeColumn{col: col, year: year, month: month})
	}
	return cols
}

// parseWhole parses a cell that should carry a whole number but may be
// formatted as a float (raw values like "2024" or "2024.0").
func parseWhole(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return int(v), true
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
