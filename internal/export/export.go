// Package export renders admin reports as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pettag/internal/domain"
)

// BOM is written ahead of CSV output so Excel on Windows detects UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", domain.NewValidation("format", "must be csv or xlsx")
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Table is a rectangular report. Cells hold string, int, int64 or float64
// values; floats are money and keep two decimals in CSV.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]interface{}
}

// Write renders the table to w in the given format.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, t)
	case FormatXLSX:
		return writeXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeCSV(w io.Writer, t Table) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	rows := append([][]interface{}{header}, t.Rows...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// RevenueTable lists revenue per month followed by the active totals.
func RevenueTable(report domain.RevenueAnalytics) Table {
	t := Table{
		Sheet:  "Revenue",
		Header: []string{"Month", "Revenue", "Currency"},
	}
	for _, m := range report.RevenueByMonth {
		t.Rows = append(t.Rows, []interface{}{m.Month, m.Revenue, report.Currency})
	}
	t.Rows = append(t.Rows,
		[]interface{}{"Active Total", report.TotalRevenue, report.Currency},
		[]interface{}{"Active Average", report.AverageRevenue, report.Currency},
	)
	return t
}

// ExpiringTable lists expiring subscriptions with their owner's contact.
func ExpiringTable(subs []domain.SubscriptionWithUser) Table {
	t := Table{
		Sheet: "Expiring",
		Header: []string{
			"Subscription ID", "Owner Name", "Owner Email", "Owner Phone",
			"Plan", "Amount", "Currency", "Start Date", "End Date",
		},
	}
	for i := range subs {
		s := &subs[i]
		t.Rows = append(t.Rows, []interface{}{
			s.ID, s.Owner.Name, s.Owner.Email, s.Owner.Phone,
			string(s.PlanType), s.Amount, s.Currency,
			formatDate(s.StartDate), formatDate(s.EndDate),
		})
	}
	return t
}

func formatCell(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return formatMoney(c)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
