package domain

import "time"

// Setting represents a key-value entry in the persistent store
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
