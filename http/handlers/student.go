package handlers

import (
	"admission-portal/db"
	"admission-portal/http/response"
	"admission-portal/models"
	"admission-portal/services"
	"admission-portal/utils"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// RegisterStudent creates a single student record keyed by roll number.
func RegisterStudent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		RollNumber string `json:"roll_number"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Education  string `json:"education"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateRollNumber(req.RollNumber); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateName(req.Name); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Phone != "" {
		if err := utils.ValidatePhone(req.Phone); err != nil {
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	now := time.Now()
	var studentID int
	query := `INSERT INTO students (roll_number, name, email, phone, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (roll_number) DO NOTHING
		RETURNING id`
	err := db.DB.QueryRowContext(r.Context(), query,
		req.RollNumber, req.Name, req.Email, req.Phone, req.Education, now, now).Scan(&studentID)
	if err == sql.ErrNoRows {
		// ON CONFLICT DO NOTHING returns no row when the roll number is taken.
		response.ErrorResponse(w, http.StatusConflict, "Roll number already registered")
		return
	}
	if err != nil {
		log.Printf("Error registering student: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Error registering student")
		return
	}

	response.SuccessResponse(w, http.StatusCreated, "Student registered", map[string]interface{}{
		"id":          studentID,
		"roll_number": req.RollNumber,
	})
}

// GetStudents lists students with pagination.
func GetStudents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	page, pageSize := utils.ParsePagination(r)

	query := `SELECT id, roll_number, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(education, ''), selected_course, created_at, updated_at
		FROM students ORDER BY roll_number ASC LIMIT $1 OFFSET $2`
	rows, err := db.DB.QueryContext(r.Context(), query, pageSize, (page-1)*pageSize)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error fetching students")
		return
	}
	defer rows.Close()

	students := []models.StudentResponse{}
	for rows.Next() {
		student, err := utils.ScanStudent(rows)
		if err != nil {
			response.ErrorResponse(w, http.StatusInternalServerError, "Error processing students")
			return
		}
		students = append(students, student.ToResponse())
	}

	if err = rows.Err(); err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error processing students")
		return
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d students", len(students)), students)
}

// GetStudent retrieves a single student by roll number.
func GetStudent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	roll := r.URL.Query().Get("roll")
	if roll == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Roll number is required")
		return
	}

	var student models.Student
	var selectedCourse []byte
	query := `SELECT id, roll_number, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(education, ''), selected_course, created_at, updated_at
		FROM students WHERE roll_number = $1`
	err := db.DB.QueryRowContext(r.Context(), query, roll).
		Scan(&student.ID, &student.RollNumber, &student.Name, &student.Email,
			&student.Phone, &student.Education, &selectedCourse, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		response.ErrorResponse(w, http.StatusNotFound, "Student not found")
		return
	}

	student.SelectedCourse, err = models.DecodeCourseSelection(selectedCourse)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error reading student record")
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Student retrieved", student.ToResponse())
}

// UploadStudents handles bulk student import from a spreadsheet.
func UploadStudents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	log.Printf("Processing student upload: %s", header.Filename)

	students, err := services.ParseStudentsSheet(file)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error parsing spreadsheet: "+err.Error())
		return
	}

	inserted := 0
	now := time.Now()
	for _, s := range students {
		res, err := db.DB.ExecContext(r.Context(),
			`INSERT INTO students (roll_number, name, email, phone, education, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (roll_number) DO NOTHING`,
			s.RollNumber, s.Name, s.Email, s.Phone, s.Education, now, now)
		if err != nil {
			log.Printf("Error inserting student %s: %v", s.RollNumber, err)
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	response.SuccessResponse(w, http.StatusOK,
		fmt.Sprintf("Imported %d of %d students", inserted, len(students)),
		map[string]int{"imported": inserted, "total": len(students)})
}
