package usecase

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Engine error kinds. Every storage failure is converted to one of these at
// the usecase boundary; raw driver errors never reach the handlers.
var (
	// Not-found
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrPatientNotFound  = errors.New("patient not found in hospital roster")
	ErrUserNotFound     = errors.New("user not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// Capacity and duplicates
	ErrNoBedsAvailable = errors.New("no beds available")
	ErrAlreadyAdmitted = errors.New("patient already admitted to this hospital")

	// Concurrent-mutation conflicts: a precondition held at read time but not
	// at commit time. Expected outcomes, always preceded by a full rollback.
	ErrAllocationConflict = errors.New("no matching hospital with available beds")
	ErrDischargeConflict  = errors.New("patient was discharged concurrently")
	ErrBedCountConflict   = errors.New("bed counts changed concurrently")

	// Validation
	ErrInvalidSearchRadius   = errors.New("search radius out of range")
	ErrNoHospitalInRange     = errors.New("no hospital with available beds within the search radius")
	ErrBedCountExceedsTotal  = errors.New("available beds cannot exceed total beds")
	ErrBedCountBelowAdmitted = errors.New("cannot set occupied beds lower than current patient count")

	// Authorization
	ErrHospitalAccessDenied = errors.New("operator is not bound to this hospital")

	// Infrastructure
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Auth
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
)

// translateStorageError wraps connection-level failures as
// ErrStorageUnavailable while passing through everything else untouched.
func translateStorageError(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
