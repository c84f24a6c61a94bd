package ingest

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nacora/cargo-analytics/internal/country"
)

// Policy ledger column names.
const (
	colCertificate    = "Certificate Number"
	colDateBooked     = "Date Booked"
	colPremium        = "Total Premium USD"
	colNamedAssured   = "Named Assured"
	colAssuredCountry = "Named Assured Country"
	colPrimaryCountry = "Primary Assured Country"
	colStatus         = "Status"
	colConveyance     = "Conveyance (Custom)"
	colRawRegion      = "REPORTING: NacoraRegion"
)

// statusBooked is matched case-sensitively when deriving the booked flag.
const statusBooked = "Booked"

// ErrNoRows is returned when a ledger contains no data rows at all.
// Individually malformed rows are defaulted or skipped, never an error.
var ErrNoRows = errors.New("ingest: no data rows found")

// PolicyTable is the raw cell grid of a policy ledger: a header row
// resolved to column indexes plus the data rows beneath it.
type PolicyTable struct {
	columns map[string]int
	rows    [][]string
}

// Len returns the number of data rows.
func (t *PolicyTable) Len() int { return len(t.rows) }

// cell returns the named column of row, or "" when the column is absent
// or the row is short.
func (t *PolicyTable) cell(row []string, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ExtractPolicyTable reads the first sheet of a policy-ledger workbook
// into a raw table. Cells are read raw so date serials survive as
// numbers.
func ExtractPolicyTable(r io.Reader) (*PolicyTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header != "" {
			columns[header] = i
		}
	}

	return &PolicyTable{columns: columns, rows: rows[1:]}, nil
}

// DerivePolicies turns the raw table into policy records using the given
// normalizer. Bad cells are defaulted (zero premium, nil date, Unknown
// unit); a row is never a reason to abort.
func DerivePolicies(t *PolicyTable, norm *country.Normalizer) []PolicyRecord {
	records := make([]PolicyRecord, 0, len(t.rows))
	for _, row := range t.rows {
		date := ParseCellDate(t.cell(row, colDateBooked))
		monthKey := ""
		if date != nil {
			monthKey = MonthKey(*date)
		}

		rawCountry := t.cell(row, colPrimaryCountry)
		operating := norm.Normalize(rawCountry)
		region := country.Region(operating)
		if rawCountry == "" {
			// No country at all: fall back to the region column the
			// source data carries. A country that merely failed to
			// resolve keeps its empty region.
			region = t.cell(row, colRawRegion)
		}

		status := t.cell(row, colStatus)
		records = append(records, PolicyRecord{
			CertificateNumber: t.cell(row, colCertificate),
			DateBooked:        date,
			MonthKey:          monthKey,
			PremiumUSD:        parsePremium(t.cell(row, colPremium)),
			NamedAssured:      t.cell(row, colNamedAssured),
			AssuredCountry:    norm.Normalize(t.cell(row, colAssuredCountry)),
			OperatingCountry:  operating,
			Region:            region,
			Status:            status,
			BusinessUnit:      StandardizeBusinessUnit(t.cell(row, colConveyance)),
			Booked:            status == statusBooked,
		})
	}
	return records
}

// parsePremium parses a premium cell as a float, defaulting to 0 and
// rounding to the nearest whole unit.
func parsePremium(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
