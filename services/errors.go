package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// Sentinel errors for the service layer. Controllers match these with
// errors.Is and translate them into HTTP status codes; everything else is
// treated as a storage failure.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrRoomNotAvailable = errors.New("room_not_available")
	ErrDateConflict     = errors.New("date_conflict")
	ErrDuplicateRoom    = errors.New("duplicate_room_number")
	ErrConflict         = errors.New("conflict")
	ErrState            = errors.New("state_error")
	ErrStorage          = errors.New("storage_error")
)

// storageErr logs the raw database error server-side and returns an opaque
// ErrStorage so driver/SQL details never reach the caller.
func storageErr(op string, err error) error {
	log.Printf("storage error (%s): %v", op, err)
	return fmt.Errorf("%w: %s", ErrStorage, op)
}

// isDuplicateKey detects unique-constraint violations from MySQL (1062) and,
// as a fallback, from drivers that only expose the message text (sqlite).
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
