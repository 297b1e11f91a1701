package swifi

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable indicates the server directory or the
	// speedtest.net configuration could not be retrieved.
	ErrCatalogUnavailable = errors.New("server directory unavailable")

	// ErrInvalidServerID indicates the requested server id does not parse
	// as a non-negative integer.
	ErrInvalidServerID = errors.New("server id must be a valid number")

	// ErrServerNotFound indicates the requested id has no match among the
	// nearest servers.
	ErrServerNotFound = errors.New("server not found in available servers")

	// ErrNoServersAvailable indicates candidate selection succeeded but
	// yielded no servers.
	ErrNoServersAvailable = errors.New("no servers available for testing")

	// ErrAllAttemptsFailed indicates every candidate server was tried and
	// failed.
	ErrAllAttemptsFailed = errors.New("all attempts failed, please check your connection")
)

// MeasurementError reports a failed engine call for one test direction.
type MeasurementError struct {
	Direction Direction
	Cause     error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("%s speed test failed: %v", e.Direction, e.Cause)
}

func (e *MeasurementError) Unwrap() error {
	return e.Cause
}
