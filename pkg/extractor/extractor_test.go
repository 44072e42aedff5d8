package extractor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtract_CSV(t *testing.T) {
	csv := strings.Join([]string{
		"Recipient,Amount,Currency,Purpose,Priority",
		"0xABC,100,USDT,Development services,high",
		"0xDEF,250.50,USDT,Consulting fees,",
		",50,USDT,blank recipient,",
		"0x123,-10,USDT,negative amount,",
		"0x456,not-a-number,USDT,bad amount,",
	}, "\n")

	entries, stats, err := Extract(strings.NewReader(csv), "payments.csv", RequestMetadata{UserID: "u1"})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 5, stats.TotalRows)
	assert.Equal(t, 3, stats.SkippedRows)

	assert.Equal(t, "pay-1", entries[0].ID)
	assert.Equal(t, "0xABC", entries[0].Recipient)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, models.PriorityHigh, entries[0].Priority)
	assert.Equal(t, models.PENDING_APPROVAL, entries[0].Status)

	assert.Equal(t, "pay-2", entries[1].ID)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromFloat(250.50)))
	assert.Equal(t, models.PriorityNormal, entries[1].Priority)
}

func TestExtract_ColumnSynonyms(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wallet and value", "Wallet,Value"},
		{"to and payment", "To,Payment"},
		{"receiver and sum", "Receiver,Sum"},
		{"address and amt", "Address,Amt"},
		{"underscored wallet address", "Wallet_Address,Amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.header + "\n0xABC,100\n"

			entries, _, err := Extract(strings.NewReader(csv), "payments.csv", RequestMetadata{})

			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "0xABC", entries[0].Recipient)
			assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(100)))
		})
	}
}

func TestExtract_Defaults(t *testing.T) {
	csv := "Recipient,Amount\n0xABC,100\n"

	entries, _, err := Extract(strings.NewReader(csv), "payments.csv", RequestMetadata{})

	require.NoError(t, err)
	assert.Equal(t, "USDT", entries[0].Currency)
	assert.Equal(t, "Treasury payment", entries[0].Purpose)
	assert.Equal(t, models.PriorityNormal, entries[0].Priority)
}

func TestExtract_MetadataDefaults(t *testing.T) {
	csv := "Recipient,Amount\n0xABC,100\n"
	meta := RequestMetadata{
		DefaultCurrency: "USDC",
		DefaultPurpose:  "Payroll",
		DefaultPriority: "urgent",
		DefaultCountry:  "Germany",
	}

	entries, _, err := Extract(strings.NewReader(csv), "payments.csv", meta)

	require.NoError(t, err)
	assert.Equal(t, "USDC", entries[0].Currency)
	assert.Equal(t, "Payroll", entries[0].Purpose)
	assert.Equal(t, models.PriorityHigh, entries[0].Priority)
	assert.Equal(t, "Germany", entries[0].Country)
}

func TestExtract_MissingColumns(t *testing.T) {
	csv := "Date,Status\n2024-01-15,Pending\n"

	_, _, err := Extract(strings.NewReader(csv), "payments.csv", RequestMetadata{})

	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestExtract_NoUsableRows(t *testing.T) {
	csv := "Recipient,Amount\n,100\n0xABC,0\n"

	_, _, err := Extract(strings.NewReader(csv), "payments.csv", RequestMetadata{})

	assert.ErrorIs(t, err, ErrNoUsablePayments)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, _, err := Extract(strings.NewReader("hello"), "payments.pdf", RequestMetadata{})

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_Excel(t *testing.T) {
	// Build a workbook in memory rather than shipping a fixture.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Recipient"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Amount"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Currency"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 150.75))
	require.NoError(t, f.SetCellValue(sheet, "C2", "USDT"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Treasury"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 1000))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	entries, stats, err := Extract(&buf, "payments.xlsx", RequestMetadata{})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, stats.SkippedRows)
	assert.Equal(t, "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6", entries[0].Recipient)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromFloat(150.75)))
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(1000)))
}
