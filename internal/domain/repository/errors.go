package repository

import "errors"

// ErrNotFound marks an update or delete whose id matched nothing. Callers
// that look the record up first only see it on a genuine inconsistency.
var ErrNotFound = errors.New("record not found")
