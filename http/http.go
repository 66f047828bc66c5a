package http

import (
	"admission-portal/http/handlers"
	"admission-portal/http/middleware"
	"net/http"
)

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes() {
	// Student APIs
	http.HandleFunc("/register-student", middleware.EnableCORS(handlers.RegisterStudent))
	http.HandleFunc("/students", middleware.EnableCORS(handlers.GetStudents))
	http.HandleFunc("/student", middleware.EnableCORS(handlers.GetStudent))
	http.HandleFunc("/upload-students", middleware.EnableCORS(handlers.UploadStudents))

	// Course catalog APIs
	http.HandleFunc("/courses", middleware.EnableCORS(handlers.GetCourses))
	http.HandleFunc("/course", middleware.EnableCORS(handlers.GetCourseByID))
	http.HandleFunc("/create-course", middleware.EnableCORS(handlers.CreateCourse))

	// Payment APIs
	http.HandleFunc("/create-order", middleware.EnableCORS(handlers.CreateOrder))
	http.HandleFunc("/verify-payment", middleware.EnableCORS(handlers.VerifyPayment))

	// Ledger APIs (admin)
	http.HandleFunc("/ledger", middleware.EnableCORS(handlers.GetLedger))
	http.HandleFunc("/ledger/export", middleware.EnableCORS(handlers.ExportLedger))
}
