package model

import "errors"

// ErrInvalidAmount is returned when an amount is not a non-negative number.
var ErrInvalidAmount = errors.New("amount must be a non-negative number")
