package schedule

import "errors"

var (
	// ErrGenerationFailed means the engine could not produce a valid
	// schedule, typically because the business-day walk hit its bound.
	ErrGenerationFailed = errors.New("schedule generation failed")

	// ErrGenerationInFlight means another generation holds the
	// per-payroll lock. Callers should wait or no-op, not hard-fail.
	ErrGenerationInFlight = errors.New("date generation already in flight for payroll")

	// ErrDataUnavailable means the payroll or schedule store could not
	// be read or written.
	ErrDataUnavailable = errors.New("schedule data unavailable")
)
