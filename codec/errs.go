package codec

import "errors"

// ErrBadFormat wraps every decode failure for well-known scalar
// formats (datetime, date, time-of-day, decimal).
var ErrBadFormat = errors.New("bad wire format")
