// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"errors"
	"fmt"
)

// Validation errors returned by the photo store. Handlers map these to
// 400 responses; anything else is an unexpected I/O failure and maps to 500.
var (
	ErrInvalidIdentifier    = errors.New("invalid listing identifier")
	ErrNoFiles              = errors.New("no files were submitted")
	ErrTooManyFiles         = errors.New("too many files in one request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("file exceeds the size limit")
)

// CapacityError reports a listing that is at (or past) its photo ceiling.
type CapacityError struct {
	Current int // files currently on disk for the listing
	Limit   int // configured ceiling
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("listing holds %d of at most %d photos", e.Current, e.Limit)
}

// IsValidation reports whether err is one of the request validation
// errors, as opposed to an unexpected storage failure.
func IsValidation(err error) bool {
	var capErr *CapacityError
	return errors.Is(err, ErrInvalidIdentifier) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrTooManyFiles) ||
		errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrPayloadTooLarge) ||
		errors.As(err, &capErr)
}
