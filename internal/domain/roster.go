package domain

import "time"

// ClassRoster maps a class to its grade and carries a denormalized counter of
// enrolled students. The counter is only ever moved by an atomic SQL delta
// inside the enrollment transaction, never by read-modify-write.
type ClassRoster struct {
	ClassID       string
	Name          string
	Grade         string
	EnrolledCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
