package report

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ShiftSheet = "Shifts"

type ShiftRow struct {
	ShiftID         int
	ShiftDate       time.Time
	WorkerName      string
	PosID           int
	AverageScore    *float64
	TotalPercentage decimal.Decimal
	Payout          decimal.Decimal
	Status          string
}

var shiftHeader = []interface{}{"Shift", "Date", "Worker", "POS", "Average score", "Total %", "Payout", "Status"}

// WriteShiftReport writes the rows as a single-sheet workbook with a payout total at the bottom.
func WriteShiftReport(w io.Writer, rows []ShiftRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ShiftSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ShiftSheet, "A1", &shiftHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(ShiftSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range rows {
		var average interface{}
		if row.AverageScore != nil {
			average = *row.AverageScore
		}
		values := []interface{}{
			row.ShiftID,
			row.ShiftDate.Format(time.DateOnly),
			row.WorkerName,
			row.PosID,
			average,
			row.TotalPercentage.InexactFloat64(),
			row.Payout.InexactFloat64(),
			row.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ShiftSheet, cell, &values); err != nil {
			return err
		}
	}

	totalRow := len(rows) + 2
	if err := f.SetCellValue(ShiftSheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return err
	}
	if len(rows) > 0 {
		formula := fmt.Sprintf("SUM(G2:G%d)", totalRow-1)
		if err := f.SetCellFormula(ShiftSheet, fmt.Sprintf("G%d", totalRow), formula); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(ShiftSheet, totalRow, totalRow, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(ShiftSheet, "B", "C", 18); err != nil {
		return err
	}
	return f.Write(w)
}
