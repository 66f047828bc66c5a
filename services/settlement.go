package services

import (
	"admission-portal/errors"
	"admission-portal/logger"
	"admission-portal/models"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SettleRequest is a client-submitted payment receipt plus the course the
// student is purchasing.
type SettleRequest struct {
	OrderID    string
	PaymentID  string
	Signature  string
	RollNumber string
	Course     models.CourseSelection
}

// SettlementResult reports the outcome of a successful (or replayed)
// settlement: the ledger entry and the authoritative merged student record.
type SettlementResult struct {
	AlreadySettled bool
	Entry          models.LedgerEntry
	Student        models.Student
}

// VerificationService owns the transition of a student's course slot into the
// paid state and the creation of the matching ledger entry. Both happen in a
// single transaction: ledger and record agree or neither changes.
type VerificationService struct {
	db     *sql.DB
	secret string
}

// NewVerificationService creates a VerificationService over the given store.
// secret is the gateway key secret shared out-of-band; it never leaves the
// server.
func NewVerificationService(db *sql.DB, secret string) *VerificationService {
	return &VerificationService{db: db, secret: secret}
}

// VerifyAndSettle validates the receipt signature and, on match, appends the
// ledger entry and merges the paid course into the student record as one
// transaction. Replaying an already-settled receipt returns the prior result
// without mutating anything. A missing student aborts the whole settlement.
func (s *VerificationService) VerifyAndSettle(ctx context.Context, req SettleRequest) (*SettlementResult, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, errors.NewInvalidParamsError("order_id, payment_id and signature are required")
	}
	if req.RollNumber == "" {
		return nil, errors.NewInvalidParamsError("roll_number is required")
	}

	if !VerifyReceiptSignature(req.OrderID, req.PaymentID, req.Signature, s.secret) {
		logger.Warn("Signature mismatch for order %s (roll %s)", req.OrderID, req.RollNumber)
		return nil, errors.NewUnauthorizedError("payment signature verification failed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewInternalServerError("error starting transaction")
	}
	defer tx.Rollback()

	// Lock the student row first. This serializes concurrent settlements for
	// the same roll number and guarantees the ledger append below can be
	// rolled back if the merge target is missing.
	student, err := lockStudent(ctx, tx, req.RollNumber)
	if err == sql.ErrNoRows {
		return nil, errors.NewInconsistentError(fmt.Sprintf("student record not found for roll number %s", req.RollNumber))
	}
	if err != nil {
		return nil, errors.NewInternalServerError("error loading student record")
	}

	paidCourse := req.Course
	paidCourse.PaymentStatus = models.CoursePaymentPaid

	entry := models.LedgerEntry{
		RollNumber:  req.RollNumber,
		StudentName: student.Name,
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Amount:      req.Course.Amount,
		Currency:    "INR",
		Course:      courseLabel(paidCourse),
		PaymentDate: time.Now().UTC(),
	}

	// The unique constraint on order_id makes the append idempotent: a
	// replayed receipt inserts nothing and we return the prior settlement.
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payment_ledger (roll_number, student_name, order_id, payment_id, amount, currency, course, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (order_id) DO NOTHING`,
		entry.RollNumber, entry.StudentName, entry.OrderID, entry.PaymentID,
		entry.Amount, entry.Currency, entry.Course, entry.PaymentDate)
	if err != nil {
		return nil, errors.NewInternalServerError("error appending ledger entry")
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, errors.NewInternalServerError("error checking ledger append")
	}

	if inserted == 0 {
		prior, err := s.loadEntry(ctx, tx, req.OrderID)
		if err != nil {
			return nil, errors.NewInternalServerError("error loading settled ledger entry")
		}
		if err = tx.Commit(); err != nil {
			return nil, errors.NewInternalServerError("error committing transaction")
		}
		logger.Info("Duplicate receipt for order %s, returning prior settlement", req.OrderID)
		return &SettlementResult{AlreadySettled: true, Entry: prior, Student: student}, nil
	}

	// A different order for a student who already paid is a re-purchase,
	// which the portal blocks. Rolling back also undoes the ledger append.
	if student.SelectedCourse.Paid() {
		return nil, errors.NewConflictError(fmt.Sprintf("course already purchased for roll number %s", req.RollNumber))
	}

	selectionJSON, err := json.Marshal(paidCourse)
	if err != nil {
		return nil, errors.NewInternalServerError("error encoding course selection")
	}

	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx,
		`UPDATE students SET selected_course = $1::jsonb, updated_at = $2 WHERE roll_number = $3`,
		selectionJSON, now, req.RollNumber); err != nil {
		return nil, errors.NewInternalServerError("error merging course into student record")
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.NewInternalServerError("error committing transaction")
	}

	student.SelectedCourse = &paidCourse
	student.UpdatedAt = now

	logger.Info("Settled order %s for roll %s (%.2f %s)", entry.OrderID, entry.RollNumber, entry.Amount, entry.Currency)
	return &SettlementResult{Entry: entry, Student: student}, nil
}

// lockStudent loads a student row under FOR UPDATE so the settlement holds it
// until commit.
func lockStudent(ctx context.Context, tx *sql.Tx, rollNumber string) (models.Student, error) {
	var student models.Student
	var selectedCourse []byte

	err := tx.QueryRowContext(ctx,
		`SELECT id, roll_number, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(education, ''), selected_course, created_at, updated_at
		 FROM students WHERE roll_number = $1 FOR UPDATE`, rollNumber).
		Scan(&student.ID, &student.RollNumber, &student.Name, &student.Email,
			&student.Phone, &student.Education, &selectedCourse, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return student, err
	}

	student.SelectedCourse, err = models.DecodeCourseSelection(selectedCourse)
	return student, err
}

func (s *VerificationService) loadEntry(ctx context.Context, tx *sql.Tx, orderID string) (models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := tx.QueryRowContext(ctx,
		`SELECT id, roll_number, COALESCE(student_name, ''), order_id, payment_id, amount, currency, COALESCE(course, ''), payment_date
		 FROM payment_ledger WHERE order_id = $1`, orderID).
		Scan(&entry.ID, &entry.RollNumber, &entry.StudentName, &entry.OrderID,
			&entry.PaymentID, &entry.Amount, &entry.Currency, &entry.Course, &entry.PaymentDate)
	return entry, err
}

// courseLabel renders a selection as the single ledger column value.
func courseLabel(c models.CourseSelection) string {
	label := c.Level + " " + c.Branch
	if c.HonsSubject != "" {
		label += " (" + c.HonsSubject + ")"
	}
	return label
}
