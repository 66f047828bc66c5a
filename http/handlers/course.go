package handlers

import (
	"admission-portal/db"
	"admission-portal/http/response"
	"admission-portal/models"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// GetCourses retrieves all active courses
func GetCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := `SELECT id, level, branch, COALESCE(hons_subject, ''), fee, is_active, created_at, updated_at FROM courses WHERE is_active = 1 ORDER BY id ASC`
	rows, err := db.DB.QueryContext(r.Context(), query)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error fetching courses")
		return
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Level, &course.Branch, &course.HonsSubject, &course.Fee, &course.IsActive, &course.CreatedAt, &course.UpdatedAt); err != nil {
			response.ErrorResponse(w, http.StatusInternalServerError, "Error processing courses")
			return
		}
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error processing courses")
		return
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d courses", len(courses)), courses)
}

// GetCourseByID retrieves a specific course by ID
func GetCourseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	courseIDStr := r.URL.Query().Get("id")
	if courseIDStr == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Course ID is required")
		return
	}

	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	var course models.Course
	query := `SELECT id, level, branch, COALESCE(hons_subject, ''), fee, is_active, created_at, updated_at FROM courses WHERE id = $1`
	err = db.DB.QueryRowContext(r.Context(), query, courseID).Scan(&course.ID, &course.Level, &course.Branch, &course.HonsSubject, &course.Fee, &course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		response.ErrorResponse(w, http.StatusNotFound, "Course not found")
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Course retrieved", course)
}

// CreateCourse creates a new course (admin endpoint)
func CreateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		Level       string  `json:"level"`
		Branch      string  `json:"branch"`
		HonsSubject string  `json:"hons_subject"`
		Fee         float64 `json:"fee"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if req.Level == "" || req.Branch == "" || req.Fee <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Level, branch and fee are required")
		return
	}

	now := time.Now()
	var courseID int
	query := `INSERT INTO courses (level, branch, hons_subject, fee, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, 1, $5, $6) RETURNING id`
	err := db.DB.QueryRowContext(r.Context(), query, req.Level, req.Branch, req.HonsSubject, req.Fee, now, now).Scan(&courseID)
	if err != nil {
		log.Printf("Error creating course: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Error creating course")
		return
	}

	response.SuccessResponse(w, http.StatusCreated, "Course created successfully", map[string]interface{}{
		"course_id": courseID,
		"level":     req.Level,
		"branch":    req.Branch,
		"fee":       req.Fee,
	})
}
