package helpers

import "database/sql"

// NullStringFromPtr converts a string pointer to sql.NullString.
// A nil pointer maps to SQL NULL.
func NullStringFromPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// PtrFromNullString converts a sql.NullString back to a string pointer.
// SQL NULL maps to a nil pointer.
func PtrFromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
