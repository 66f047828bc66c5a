package services

import (
	"admission-portal/models"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseStudentsSheet reads an uploaded spreadsheet and returns students with
// flexible column detection. Rows missing a roll number or name are skipped.
func ParseStudentsSheet(r io.Reader) ([]models.Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("no sheets found in spreadsheet")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data in sheet")
	}

	colIndices := detectColumns(rows[0])

	var students []models.Student
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		roll := extractField(row, colIndices["roll_number"])
		name := extractField(row, colIndices["name"])
		if roll == "" || name == "" {
			continue
		}

		students = append(students, models.Student{
			RollNumber: roll,
			Name:       name,
			Email:      extractField(row, colIndices["email"]),
			Phone:      extractField(row, colIndices["phone"]),
			Education:  extractField(row, colIndices["education"]),
		})
	}

	return students, nil
}

// detectColumns finds column indices by matching header names
func detectColumns(headers []string) map[string]int {
	indices := map[string]int{
		"roll_number": -1,
		"name":        -1,
		"email":       -1,
		"phone":       -1,
		"education":   -1,
	}

	for i, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))

		switch {
		case lower == "roll_number" || lower == "roll number" || lower == "roll no" || lower == "roll":
			indices["roll_number"] = i
		case lower == "name" || lower == "student name" || lower == "full name":
			indices["name"] = i
		case lower == "email" || lower == "e-mail" || lower == "email address":
			indices["email"] = i
		case lower == "phone" || lower == "mobile" || lower == "phone number" || lower == "contact number":
			indices["phone"] = i
		case lower == "education" || lower == "qualification" || lower == "degree":
			indices["education"] = i
		}
	}

	return indices
}

func extractField(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// ExportLedgerSheet renders ledger entries into a workbook for the admin
// export endpoint.
func ExportLedgerSheet(entries []models.LedgerEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Roll Number", "Student", "Order ID", "Payment ID", "Amount", "Currency", "Course", "Payment Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, e := range entries {
		values := []interface{}{
			e.RollNumber, e.StudentName, e.OrderID, e.PaymentID,
			e.Amount, e.Currency, e.Course, e.PaymentDate.Format("2006-01-02 15:04:05"),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
