/*
Package report renders absence analytics as a downloadable XLSX workbook.

PURPOSE:
  Backs the analytics page's export action. The workbook carries one
  sheet with the year summary and department rollup. Values come from the
  leave analytics reductions; this package only does layout.
*/
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/edhr/leave-engine/leave"
)

const sheetName = "Leave Analytics"

// WriteWorkbook renders the year's analytics to w as an XLSX workbook.
func WriteWorkbook(w io.Writer, year int, summary leave.YearStats, rollup map[string]leave.DepartmentStats) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	set := func(cell string, value any) error {
		return f.SetCellValue(sheetName, cell, value)
	}

	// Year summary block
	rows := []struct {
		label string
		value any
	}{
		{fmt.Sprintf("Leave report %d", year), nil},
		{"Total requests", summary.TotalRequests},
		{"Approved requests", summary.ApprovedRequests},
		{"Approved leave days", summary.TotalLeaveDays.InexactFloat64()},
	}
	for i, row := range rows {
		if err := set(fmt.Sprintf("A%d", i+1), row.label); err != nil {
			return err
		}
		if row.value != nil {
			if err := set(fmt.Sprintf("B%d", i+1), row.value); err != nil {
				return err
			}
		}
	}

	// Department rollup table, stable ordering for reproducible exports.
	departments := make([]string, 0, len(rollup))
	for dept := range rollup {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	headerRow := len(rows) + 2
	for col, header := range []string{"Department", "Total days", "Requests"} {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return err
		}
		if err := set(cell, header); err != nil {
			return err
		}
	}
	for i, dept := range departments {
		stats := rollup[dept]
		row := headerRow + 1 + i
		if err := set(fmt.Sprintf("A%d", row), dept); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), stats.TotalDays.InexactFloat64()); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", row), stats.RequestCount); err != nil {
			return err
		}
	}

	return f.Write(w)
}
