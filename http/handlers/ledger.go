package handlers

import (
	"admission-portal/db"
	"admission-portal/http/response"
	"admission-portal/models"
	"admission-portal/services"
	"fmt"
	"log"
	"net/http"
	"time"
)

// GetLedger lists payment ledger entries, newest first (admin endpoint).
func GetLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	entries, err := fetchLedgerEntries(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error fetching ledger")
		return
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d ledger entries", len(entries)), entries)
}

// ExportLedger streams the ledger as a spreadsheet (admin endpoint).
func ExportLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	entries, err := fetchLedgerEntries(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error fetching ledger")
		return
	}

	f, err := services.ExportLedgerSheet(entries)
	if err != nil {
		log.Printf("Error building ledger export: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Error building export")
		return
	}

	fileName := fmt.Sprintf("payment_ledger_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)

	if err := f.Write(w); err != nil {
		log.Printf("Error writing ledger export: %v", err)
	}
}

func fetchLedgerEntries(r *http.Request) ([]models.LedgerEntry, error) {
	query := `SELECT id, roll_number, COALESCE(student_name, ''), order_id, payment_id, amount, currency, COALESCE(course, ''), payment_date
		FROM payment_ledger ORDER BY payment_date DESC`
	rows, err := db.DB.QueryContext(r.Context(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.RollNumber, &e.StudentName, &e.OrderID, &e.PaymentID,
			&e.Amount, &e.Currency, &e.Course, &e.PaymentDate); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
