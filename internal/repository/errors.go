package repository

import "errors"

// ErrNotFound is returned when a row-targeting write matched nothing.
var ErrNotFound = errors.New("repository: not found")
