package db

import (
	"admission-portal/config"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	return nil
}

func createTables() error {
	studentTable := `
	CREATE TABLE IF NOT EXISTS students (
		id SERIAL PRIMARY KEY,
		roll_number TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		education TEXT,
		selected_course JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	courseTable := `
	CREATE TABLE IF NOT EXISTS courses (
		id SERIAL PRIMARY KEY,
		level TEXT NOT NULL,
		branch TEXT NOT NULL,
		hons_subject TEXT,
		fee REAL NOT NULL,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// order_id is UNIQUE so a replayed receipt can never append twice.
	ledgerTable := `
	CREATE TABLE IF NOT EXISTS payment_ledger (
		id SERIAL PRIMARY KEY,
		roll_number TEXT NOT NULL,
		student_name TEXT,
		order_id TEXT NOT NULL UNIQUE,
		payment_id TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		course TEXT,
		receipt TEXT,
		payment_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create students first so the ledger's roll numbers have a home
	if _, err := DB.Exec(studentTable); err != nil {
		return fmt.Errorf("error creating students table: %w", err)
	}

	if _, err := DB.Exec(courseTable); err != nil {
		return fmt.Errorf("error creating courses table: %w", err)
	}

	if _, err := DB.Exec(ledgerTable); err != nil {
		return fmt.Errorf("error creating payment_ledger table: %w", err)
	}

	return nil
}
