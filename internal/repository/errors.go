package repository

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotFound      = errors.New("catalog item not found")
	ErrItemTypeNotFound  = errors.New("item type not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateUser     = errors.New("user with given email or phone number already exists")
	ErrDuplicateItemType = errors.New("item type already exists")
	ErrInsufficientStock = errors.New("not enough stock to fulfill the order")
)

// isUniqueViolation detects a unique-constraint failure for both backends:
// pq error code 23505, sqlite result codes 1555 (pk) and 2067 (unique).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
