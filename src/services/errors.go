package services

import "errors"

// ErrInsufficientData is returned when a series has too few valid observations.
var ErrInsufficientData = errors.New("insufficient data")
