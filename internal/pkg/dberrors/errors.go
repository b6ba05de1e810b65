package dberrors

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers that mean the store understood the statement
// and rejected the value.
const (
	ErrBadNullColumn  = 1048
	ErrDupEntry       = 1062
	ErrDataOutOfRange = 1264
	ErrDataTooLong    = 1406
)

// IsConstraintError reports whether the store responded but rejected the
// value: null violation, duplicate key, out-of-range, or truncation. Any
// other failure is treated as the store being unavailable.
func IsConstraintError(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case ErrBadNullColumn, ErrDupEntry, ErrDataOutOfRange, ErrDataTooLong:
		return true
	}
	return false
}
