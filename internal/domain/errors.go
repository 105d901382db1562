package domain

import "errors"

var (
	// Student account errors
	ErrStudentNotFound     = errors.New("student account not found")
	ErrDuplicateEnrollment = errors.New("student is already enrolled")

	// Roster errors
	ErrClassNotFound  = errors.New("class roster not found")
	ErrDuplicateClass = errors.New("class roster already exists")

	// Fee schedule errors
	ErrFeeEntryNotFound = errors.New("fee schedule entry not found")
	ErrInvalidGrade     = errors.New("grade is required")

	// Payment errors
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidPayer    = errors.New("payer name is required")
	ErrPaymentNotFound = errors.New("payment not found")

	// Journal errors
	ErrJournalEntryNotFound = errors.New("journal entry not found")

	// Concurrency errors
	ErrWriteConflict = errors.New("write conflict on concurrent update")

	// Auth errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
)
