package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Ledger errors
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidSection  = errors.New("invalid section")

	// Export errors
	ErrEmptySnapshot = errors.New("snapshot contains no records")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
