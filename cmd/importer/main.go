package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"

	"pharmacy-duty-api/internal/config"

	"github.com/lib/pq"
)

// RosterRow is one pharmacy-on-duty entry from the roster CSV. Coordinates
// stay textual; the API normalizes them at read time.
type RosterRow struct {
	City      string
	District  string
	Name      string
	Address   string
	Phone     string
	DutyDate  string
	Latitude  string
	Longitude string
}

func main() {
	file := flag.String("file", "", "Path to the roster CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	rows, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d roster rows\n", len(rows))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	db, err := sql.Open("postgres", cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Ensure table exists
	if err := createTableIfNotExists(db); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert rows
	if err := insertRows(db, rows); err != nil {
		fmt.Printf("Error inserting rows: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	if err := verifyImport(db, len(rows)); err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d roster rows\n", len(rows))
}

func parseCSV(filePath string) ([]RosterRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows []RosterRow
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		// city,district,name,address,phone,duty_date[,latitude,longitude]
		if len(record) < 6 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 6 columns", len(record))
		}

		row := RosterRow{
			City:     strings.TrimSpace(record[0]),
			District: strings.TrimSpace(record[1]),
			Name:     strings.TrimSpace(record[2]),
			Address:  strings.TrimSpace(record[3]),
			Phone:    strings.TrimSpace(record[4]),
			DutyDate: strings.TrimSpace(record[5]),
		}
		// Coordinates are optional in exported rosters; leave them empty
		// rather than inventing zeros here.
		if len(record) >= 8 {
			row.Latitude = strings.TrimSpace(record[6])
			row.Longitude = strings.TrimSpace(record[7])
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func createTableIfNotExists(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS pharmacies (
		id BIGSERIAL PRIMARY KEY,
		city TEXT NOT NULL,
		district TEXT NOT NULL,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		duty_date DATE NOT NULL,
		latitude TEXT,
		longitude TEXT
	);
	CREATE INDEX IF NOT EXISTS pharmacies_duty_date_city_idx ON pharmacies (duty_date, LOWER(city));
	`
	_, err := db.Exec(query)
	return err
}

func insertRows(db *sql.DB, rows []RosterRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn("pharmacies",
		"city", "district", "name", "address", "phone", "duty_date", "latitude", "longitude"))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, r := range rows {
		var lat, lng interface{}
		if r.Latitude != "" {
			lat = r.Latitude
		}
		if r.Longitude != "" {
			lng = r.Longitude
		}
		if _, err := stmt.Exec(r.City, r.District, r.Name, r.Address, r.Phone, r.DutyDate, lat, lng); err != nil {
			return fmt.Errorf("failed to copy row: %w", err)
		}
	}

	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	return tx.Commit()
}

func verifyImport(db *sql.DB, expectedCount int) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM pharmacies").Scan(&count); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	if count < expectedCount {
		return fmt.Errorf("row count mismatch: expected at least %d, got %d", expectedCount, count)
	}

	var sample string
	if err := db.QueryRow("SELECT name FROM pharmacies LIMIT 1").Scan(&sample); err != nil {
		return fmt.Errorf("failed to check sample row: %w", err)
	}

	fmt.Printf("Sample pharmacy: %s\n", sample)
	return nil
}
