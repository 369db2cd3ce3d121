package repository

import "errors"

// ErrNotFound is the repository-level sentinel returned when a lookup for a
// single session finds no row. The session manager translates it into the
// domain-level not-found error so callers never see `sql.ErrNoRows` or any
// other driver detail.
var ErrNotFound = errors.New("repository: not found")
