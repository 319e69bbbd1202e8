package calendar

import "errors"

// ErrDataUnavailable means the holiday store could not be read. Callers
// must fail the current operation; treating it as "no holidays" would
// silently produce wrong business-day adjustments.
var ErrDataUnavailable = errors.New("holiday data unavailable")
