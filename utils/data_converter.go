package utils

import (
	"admission-portal/models"
	"database/sql"
)

// ScanStudent reads a single student row from database query results,
// decoding the JSONB course selection column.
func ScanStudent(rows *sql.Rows) (models.Student, error) {
	var student models.Student
	var selectedCourse []byte

	err := rows.Scan(
		&student.ID, &student.RollNumber, &student.Name, &student.Email,
		&student.Phone, &student.Education, &selectedCourse,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return student, err
	}

	student.SelectedCourse, err = models.DecodeCourseSelection(selectedCourse)
	return student, err
}
