package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteShiftReport(t *testing.T) {
	average := 4.5
	rows := []ShiftRow{
		{
			ShiftID:         7,
			ShiftDate:       time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
			WorkerName:      "A. Washer",
			PosID:           3,
			AverageScore:    &average,
			TotalPercentage: decimal.NewFromInt(85),
			Payout:          decimal.NewFromInt(2700),
			Status:          "computed",
		},
		{
			ShiftID:    8,
			ShiftDate:  time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
			WorkerName: "B. Dryer",
			PosID:      3,
			Payout:     decimal.NewFromInt(1500),
			Status:     "fallback",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteShiftReport(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(ShiftSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sheetRows), 4)
	assert.Equal(t, []string{"Shift", "Date", "Worker", "POS", "Average score", "Total %", "Payout", "Status"}, sheetRows[0])
	assert.Equal(t, []string{"7", "2026-05-02", "A. Washer", "3", "4.5", "85", "2700", "computed"}, sheetRows[1])
	assert.Equal(t, "B. Dryer", sheetRows[2][2])
	assert.Equal(t, "", sheetRows[2][4])
	assert.Equal(t, "fallback", sheetRows[2][7])
	assert.Equal(t, "Total", sheetRows[3][0])

	formula, err := f.GetCellFormula(ShiftSheet, "G4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(G2:G3)", formula)
}

func TestWriteShiftReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteShiftReport(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(ShiftSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 2)
	assert.Equal(t, "Total", sheetRows[1][0])
}
