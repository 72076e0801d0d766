package cards

import "errors"

// Domain errors surfaced by the card service. Callers match them with errors.Is.
var (
	// ErrCardNotFound is returned when no card matches the given card id.
	ErrCardNotFound = errors.New("card does not exist")
	// ErrCardExists is returned when the card number is already taken.
	ErrCardExists = errors.New("a card with that number already exists")
	// ErrCardAlreadyActive is returned when enrolling an active card.
	ErrCardAlreadyActive = errors.New("card is already active")
	// ErrCardAlreadyBlocked is returned when blocking a blocked card.
	ErrCardAlreadyBlocked = errors.New("card is already blocked")
	// ErrInvalidAmount is returned when a recharge amount is zero or negative.
	ErrInvalidAmount = errors.New("recharge amount must be greater than zero")
)
