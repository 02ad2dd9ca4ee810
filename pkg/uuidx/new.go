package uuidx

import "github.com/google/uuid"

// New returns a freshly generated version 7 UUID. Version 7 ids are
// time-ordered, which keeps ids sortable by creation time.
// It panics if the underlying generator fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString returns a freshly generated version 7 UUID in its canonical
// string form.
func NewString() string {
	return New().String()
}
