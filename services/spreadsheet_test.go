package services

import (
	"bytes"
	"testing"
	"time"

	"admission-portal/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseStudentsSheet(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Roll Number", "Student Name", "Email", "Mobile", "Qualification"},
		{"2026-CS-001", "Asha Verma", "asha@example.com", "+919876543210", "12th Science"},
		{"2026-CS-002", "Ravi Kumar", "", "", ""},
		{"", "No Roll", "skip@example.com", "", ""},
	})

	students, err := ParseStudentsSheet(r)
	require.NoError(t, err)
	require.Len(t, students, 2)

	require.Equal(t, "2026-CS-001", students[0].RollNumber)
	require.Equal(t, "Asha Verma", students[0].Name)
	require.Equal(t, "asha@example.com", students[0].Email)
	require.Equal(t, "+919876543210", students[0].Phone)
	require.Equal(t, "12th Science", students[0].Education)

	require.Equal(t, "2026-CS-002", students[1].RollNumber)
}

func TestParseStudentsSheet_AlternateHeaders(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"roll no", "name", "e-mail", "phone number"},
		{"R-10", "Meena", "meena@example.com", "+911234567890"},
	})

	students, err := ParseStudentsSheet(r)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "R-10", students[0].RollNumber)
}

func TestParseStudentsSheet_NotASpreadsheet(t *testing.T) {
	_, err := ParseStudentsSheet(bytes.NewReader([]byte("this is not xlsx")))
	require.Error(t, err)
}

func TestExportLedgerSheet(t *testing.T) {
	entries := []models.LedgerEntry{
		{
			RollNumber:  "2026-CS-001",
			StudentName: "Asha Verma",
			OrderID:     "order_1",
			PaymentID:   "pay_1",
			Amount:      1500.00,
			Currency:    "INR",
			Course:      "UG Science (Physics)",
			PaymentDate: time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
		},
	}

	f, err := ExportLedgerSheet(entries)
	require.NoError(t, err)

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "Roll Number", header)

	orderID, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	require.Equal(t, "order_1", orderID)

	amount, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	require.Equal(t, "1500", amount)
}
