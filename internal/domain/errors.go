package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrLockTimeout          = errors.New("timed out waiting for seat lock")
	ErrLockContention       = errors.New("seats are locked by another request")
	ErrSeatAlreadyTaken     = errors.New("seat(s) are already taken")
	ErrPricingFailure       = errors.New("price could not be computed")
	ErrHoldExpired          = errors.New("seat hold has expired, please select your seats again")
	ErrStateConflict        = errors.New("seat state conflict")
	ErrInvalidTransition    = errors.New("invalid seat state transition")
	ErrShowAlreadyAllocated = errors.New("show inventory is already allocated")
)

// SeatConflictError names the seats found in a state other than the one a
// transaction required after it acquired their locks.
type SeatConflictError struct {
	ShowID  string
	SeatIDs []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat(s) %s of show %s are already taken", strings.Join(e.SeatIDs, ", "), e.ShowID)
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatAlreadyTaken
}

type LockTimeoutError struct {
	ShowID string
	SeatID string
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for lock on seat %s of show %s", e.SeatID, e.ShowID)
}

func (e *LockTimeoutError) Unwrap() error {
	return ErrLockTimeout
}
