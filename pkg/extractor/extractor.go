// Package extractor turns an uploaded tabular file plus request metadata
// into a normalized list of proposed payments.
package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumns is returned when no recipient or amount column could
	// be matched in the header row.
	ErrMissingColumns = errors.New("sheet is missing a recipient or amount column")

	// ErrNoUsablePayments is returned when no row yields a usable
	// (recipient, positive amount) pair.
	ErrNoUsablePayments = errors.New("no usable payment rows found")

	// ErrUnsupportedFormat is returned for file types other than xlsx/csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Column synonyms are matched case-insensitively after normalizing spaces
// and underscores.
var synonyms = map[string][]string{
	"recipient": {"recipient", "wallet", "wallet address", "to", "receiver", "address"},
	"amount":    {"amount", "value", "payment", "sum", "amt"},
	"currency":  {"currency", "ccy", "asset"},
	"purpose":   {"purpose", "description", "memo", "notes"},
	"priority":  {"priority", "urgency"},
	"country":   {"country", "destination country", "destination"},
}

// RequestMetadata carries the defaults from the inbound JSON request.
type RequestMetadata struct {
	UserID          string
	DefaultCurrency string
	DefaultPurpose  string
	DefaultPriority string
	DefaultCountry  string
}

// Stats reports what extraction did with the sheet.
type Stats struct {
	TotalRows   int
	SkippedRows int
}

// Extract parses the uploaded file and returns the proposed payments in row
// order. Rows with a blank recipient or a non-positive or unparseable amount
// are skipped and counted; a sheet with zero usable rows is an error.
func Extract(r io.Reader, filename string, meta RequestMetadata) ([]models.PaymentEntry, Stats, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, Stats{}, err
	}
	if len(rows) == 0 {
		return nil, Stats{}, ErrNoUsablePayments
	}

	cols := matchColumns(rows[0])
	if _, ok := cols["recipient"]; !ok {
		return nil, Stats{}, ErrMissingColumns
	}
	if _, ok := cols["amount"]; !ok {
		return nil, Stats{}, ErrMissingColumns
	}

	var entries []models.PaymentEntry
	stats := Stats{TotalRows: len(rows) - 1}
	for _, row := range rows[1:] {
		entry, ok := parseRow(row, cols, meta)
		if !ok {
			stats.SkippedRows++
			continue
		}
		entry.ID = fmt.Sprintf("pay-%d", len(entries)+1)
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, stats, ErrNoUsablePayments
	}
	return entries, stats, nil
}

func readRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return readExcel(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoUsablePayments
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// matchColumns maps field names to column indexes from the header row. The
// first header matching a synonym wins.
func matchColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for idx, raw := range header {
		name := normalize(raw)
		for field, names := range synonyms {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, s := range names {
				if name == s {
					cols[field] = idx
					break
				}
			}
		}
	}
	return cols
}

func normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, "_", " ")
}

func parseRow(row []string, cols map[string]int, meta RequestMetadata) (models.PaymentEntry, bool) {
	recipient := strings.TrimSpace(cell(row, cols, "recipient"))
	if recipient == "" {
		return models.PaymentEntry{}, false
	}

	rawAmount := strings.TrimSpace(cell(row, cols, "amount"))
	rawAmount = strings.ReplaceAll(rawAmount, ",", "")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil || !amount.IsPositive() {
		return models.PaymentEntry{}, false
	}

	entry := models.PaymentEntry{
		Recipient: recipient,
		Amount:    amount,
		Currency:  orDefault(cell(row, cols, "currency"), orDefault(meta.DefaultCurrency, "USDT")),
		Purpose:   orDefault(cell(row, cols, "purpose"), orDefault(meta.DefaultPurpose, "Treasury payment")),
		Priority:  normalizePriority(orDefault(cell(row, cols, "priority"), meta.DefaultPriority)),
		Country:   orDefault(cell(row, cols, "country"), meta.DefaultCountry),
		Status:    models.PENDING_APPROVAL,
	}
	return entry, true
}

func cell(row []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func normalizePriority(p string) models.Priority {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "urgent":
		return models.PriorityHigh
	default:
		return models.PriorityNormal
	}
}
