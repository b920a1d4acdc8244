package domain

import (
	"errors"
	"fmt"
)

// NotFoundError covers missing trips, routes, and reservations.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// InvalidRangeError reports a segment whose stop indices do not satisfy
// 0 <= origin < destination < number of stops.
type InvalidRangeError struct {
	Origin      int
	Destination int
	Stops       int
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid segment range [%d,%d) for %d stops", e.Origin, e.Destination, e.Stops)
}

// InvalidSeatCountError reports a non-positive seat count.
type InvalidSeatCountError struct {
	Count int
}

func (e InvalidSeatCountError) Error() string {
	return fmt.Sprintf("invalid seat count %d", e.Count)
}

// InsufficientCapacityError is the normal "fully booked" outcome of Hold
// under contention. Callers should surface it as such, not as a failure.
type InsufficientCapacityError struct {
	TripID    string
	Requested int
	Available int
}

func (e InsufficientCapacityError) Error() string {
	return fmt.Sprintf("trip %s: requested %d seats, %d available", e.TripID, e.Requested, e.Available)
}

// NotHeldError reports a transition attempted on a reservation that already
// reached an incompatible terminal state.
type NotHeldError struct {
	ReservationID string
	State         string
}

func (e NotHeldError) Error() string {
	return fmt.Sprintf("reservation %s is %s, not held", e.ReservationID, e.State)
}

// ConfirmedReleaseError reports Release on a CONFIRMED reservation; cancelling
// a confirmed booking is a separate operator-owned operation.
type ConfirmedReleaseError struct {
	ReservationID string
}

func (e ConfirmedReleaseError) Error() string {
	return fmt.Sprintf("reservation %s is confirmed; use cancel-confirmed", e.ReservationID)
}

// ConfigurationError reports malformed route/fare/trip reference data. It is
// raised at catalog build time and requires operator intervention.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e ConfigurationError) Error() string {
	if e.Msg != "" {
		return "configuration: " + e.Msg
	}
	return "configuration error"
}

func (e ConfigurationError) Unwrap() error { return e.Err }

// LedgerInvariantError signals ledger corruption (a bug): a leg counter that
// would go negative or exceed capacity. Never retried silently.
type LedgerInvariantError struct {
	TripID string
	Leg    int
	Msg    string
}

func (e LedgerInvariantError) Error() string {
	if e.TripID != "" {
		return fmt.Sprintf("ledger invariant violated on trip %s leg %d: %s", e.TripID, e.Leg, e.Msg)
	}
	return fmt.Sprintf("ledger invariant violated on leg %d: %s", e.Leg, e.Msg)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsInvalidRange(err error) bool {
	var target InvalidRangeError
	return errors.As(err, &target)
}

func IsInvalidSeatCount(err error) bool {
	var target InvalidSeatCountError
	return errors.As(err, &target)
}

func IsInsufficientCapacity(err error) bool {
	var target InsufficientCapacityError
	return errors.As(err, &target)
}

func IsNotHeld(err error) bool {
	var target NotHeldError
	return errors.As(err, &target)
}

func IsConfirmedRelease(err error) bool {
	var target ConfirmedReleaseError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsLedgerInvariant(err error) bool {
	var target LedgerInvariantError
	return errors.As(err, &target)
}
