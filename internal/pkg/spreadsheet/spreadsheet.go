package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AttendanceRow is one parsed row of an attendance workbook. Empty cells
// come back as nil; validation happens downstream, per record.
type AttendanceRow struct {
	WorkerID string
	Date     string
	CheckIn  *string
	CheckOut *string
	Status   *string
}

// ParseAttendance reads the first sheet of an xlsx workbook. The expected
// column order is worker_id, date, check_in, check_out, status, with a
// header row.
func ParseAttendance(data []byte) ([]AttendanceRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var parsed []AttendanceRow
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 {
			continue
		}
		r := AttendanceRow{
			WorkerID: cell(row, 0),
			Date:     cell(row, 1),
			CheckIn:  optCell(row, 2),
			CheckOut: optCell(row, 3),
			Status:   optCell(row, 4),
		}
		if r.WorkerID == "" && r.Date == "" {
			continue // fully blank line
		}
		parsed = append(parsed, r)
	}

	return parsed, nil
}

// PayrollRow is one exported payroll line.
type PayrollRow struct {
	WorkerName      string
	WorkerType      string
	TotalDays       int
	TotalHours      string
	BaseAmount      string
	BonusAmount     string
	DeductionAmount string
	NetAmount       string
	Status          string
}

// WritePayroll renders payroll rows as an xlsx workbook.
func WritePayroll(period string, rows []PayrollRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll %s", period))
	headers := []string{"Worker", "Type", "Days", "Hours", "Base", "Bonus", "Deductions", "Net", "Status"}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetCellValue(sheet, fmt.Sprintf("%s2", col), h)
	}

	for i, r := range rows {
		line := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), r.WorkerName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", line), r.WorkerType)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", line), r.TotalDays)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", line), r.TotalHours)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", line), r.BaseAmount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", line), r.BonusAmount)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", line), r.DeductionAmount)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", line), r.NetAmount)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", line), r.Status)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optCell(row []string, i int) *string {
	v := cell(row, i)
	if v == "" {
		return nil
	}
	return &v
}
