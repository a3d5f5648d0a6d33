package report_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edhr/leave-engine/leave"
	"github.com/edhr/leave-engine/report"
)

func TestWriteWorkbook(t *testing.T) {
	summary := leave.YearStats{
		Year:             2025,
		TotalRequests:    4,
		ApprovedRequests: 3,
		TotalLeaveDays:   decimal.NewFromFloat(5.5),
	}
	rollup := map[string]leave.DepartmentStats{
		"IT": {TotalDays: decimal.NewFromInt(5), RequestCount: 2},
		"HR": {TotalDays: decimal.NewFromFloat(0.5), RequestCount: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, 2025, summary, rollup))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Leave Analytics"

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Leave report 2025", title)

	total, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "4", total)

	// Departments are sorted: HR before IT.
	dept, err := f.GetCellValue(sheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "HR", dept)

	days, err := f.GetCellValue(sheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "0.5", days)

	count, err := f.GetCellValue(sheet, "C8")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}

func TestWriteWorkbook_EmptyRollup(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteWorkbook(&buf, 2030, leave.YearStats{Year: 2030, TotalLeaveDays: decimal.Zero}, nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
