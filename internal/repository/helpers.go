package repository

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// nullableStr converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableStr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// parseNullableStr converts a scanned sql.NullString back to a *string.
func parseNullableStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
