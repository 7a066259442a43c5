package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewID generates a new random identifier for graph records.
// Identifiers are assigned once at first observation and never reused.
func NewID() (string, error) {
	return gonanoid.New()
}

// MustNewID generates a new identifier and panics if the random source fails.
// Intended for test fixtures only.
func MustNewID() string {
	id, err := gonanoid.New()
	if err != nil {
		panic(err)
	}
	return id
}
