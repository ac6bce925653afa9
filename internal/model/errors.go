package model

import "errors"

// ErrNotFound is returned by stores when an update targets a missing record.
// Lookups by id return nil, nil instead.
var ErrNotFound = errors.New("record not found")
