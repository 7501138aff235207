package timeentry

import "errors"

var ErrInvalidClock = errors.New("time of day must be in HH:MM format")
