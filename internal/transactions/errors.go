package transactions

import "errors"

// Domain errors surfaced by the transaction service. Callers match them with errors.Is.
var (
	// ErrTransactionNotFound is returned when no transaction matches the given id.
	ErrTransactionNotFound = errors.New("transaction does not exist")
	// ErrCardBlocked is returned when purchasing with a blocked card.
	ErrCardBlocked = errors.New("card is blocked")
	// ErrCardNotActive is returned when purchasing with a card that was never enrolled.
	ErrCardNotActive = errors.New("card is not active")
	// ErrCardExpired is returned when purchasing with an expired card.
	ErrCardExpired = errors.New("card is expired")
	// ErrInsufficientFunds is returned when the card balance cannot cover the price.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrCardMismatch is returned when anulating a transaction that belongs to another card.
	ErrCardMismatch = errors.New("transaction does not belong to this card")
	// ErrAlreadyAnulated is returned when anulating a transaction twice.
	ErrAlreadyAnulated = errors.New("transaction is already anulated")
	// ErrReversalWindowExpired is returned when the reversal window has passed.
	ErrReversalWindowExpired = errors.New("transaction exceeds the reversal window and cannot be anulated")
)
