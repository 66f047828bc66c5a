package handlers

import (
	"admission-portal/config"
	"admission-portal/db"
	"admission-portal/errors"
	"admission-portal/http/response"
	"admission-portal/logger"
	"admission-portal/models"
	"admission-portal/services"
	"encoding/json"
	"net/http"
)

// CreateOrder handles POST /create-order: validates the request, checks the
// student exists and has not already paid, then asks the gateway for an
// order. Nothing is persisted on failure.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		Amount     int64  `json:"amount"` // paise
		Currency   string `json:"currency"`
		RollNumber string `json:"roll_number"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Amount <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Amount must be a positive integer in paise")
		return
	}

	// When the client identifies the student, refuse orders for unknown or
	// already-paid roll numbers before touching the gateway.
	if req.RollNumber != "" {
		var selectedCourse []byte
		err := db.DB.QueryRowContext(r.Context(),
			"SELECT selected_course FROM students WHERE roll_number = $1", req.RollNumber).Scan(&selectedCourse)
		if err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, "Student not found")
			return
		}

		selection, err := models.DecodeCourseSelection(selectedCourse)
		if err != nil {
			response.ErrorResponse(w, http.StatusInternalServerError, "Error reading student record")
			return
		}
		if selection.Paid() {
			response.ErrorResponse(w, http.StatusConflict, "Course already purchased")
			return
		}
	}

	orderService, err := services.NewOrderService()
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Payment gateway not configured")
		return
	}

	order, err := orderService.CreateOrder(services.CreateOrderRequest{
		Amount:     req.Amount,
		Currency:   req.Currency,
		RollNumber: req.RollNumber,
	})
	if err != nil {
		logger.Error("Order creation failed for roll %s: %v", req.RollNumber, err)
		response.FromError(w, err, "Error creating order")
		return
	}

	// Publish payment initiated event (best-effort)
	services.PublishOrderCreated(req.RollNumber, order)

	response.SendJSON(w, http.StatusOK, order)
}

// VerifyPayment handles POST /verify-payment: the client-submitted receipt is
// cryptographically verified and settled. The response shape is the checkout
// callback contract: {status: "success"|"failure", ...}.
func VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		verifyFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		OrderID    string                 `json:"order_id"`
		PaymentID  string                 `json:"payment_id"`
		Signature  string                 `json:"signature"`
		RollNumber string                 `json:"roll_number"`
		Course     models.CourseSelection `json:"course"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		verifyFailure(w, http.StatusBadRequest, "Invalid request")
		return
	}

	verifier := services.NewVerificationService(db.DB, config.AppConfig.RazorpayKeySecret)

	result, err := verifier.VerifyAndSettle(r.Context(), services.SettleRequest{
		OrderID:    req.OrderID,
		PaymentID:  req.PaymentID,
		Signature:  req.Signature,
		RollNumber: req.RollNumber,
		Course:     req.Course,
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Error verifying payment"
		switch errors.KindOf(err) {
		case errors.Invalid:
			status, message = http.StatusBadRequest, "Missing receipt fields"
		case errors.Unauthorized:
			status, message = http.StatusUnauthorized, "Payment signature verification failed"
		case errors.Conflict:
			status, message = http.StatusConflict, "Course already purchased"
		case errors.Inconsistent:
			status, message = http.StatusConflict, "Settlement aborted: student record not found"
		}
		logger.Error("Settlement failed for order %s: %v", req.OrderID, err)
		verifyFailure(w, status, message)
		return
	}

	if !result.AlreadySettled {
		// Receipt email rides on this event via the Kafka consumer.
		services.PublishPaymentSettled(result.Entry, result.Student.Email)
	}

	response.SendJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"order_id": result.Entry.OrderID,
		"student":  result.Student.ToResponse(),
	})
}

func verifyFailure(w http.ResponseWriter, statusCode int, message string) {
	response.SendJSON(w, statusCode, map[string]string{
		"status":  "failure",
		"message": message,
	})
}
