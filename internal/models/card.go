package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card lifecycle states.
const (
	// CardStatusInactive is the initial state of every card.
	CardStatusInactive = "INACTIVE"
	// CardStatusActive marks an enrolled card able to make purchases.
	CardStatusActive = "ACTIVE"
	// CardStatusBlocked marks a blocked card. No transition out is exposed.
	CardStatusBlocked = "BLOCKED"
)

// Card represents a prepaid card.
type Card struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	ProductID string `gorm:"type:varchar(6);not null" json:"productId"`             // First 6 digits of the card number.
	CardID    string `gorm:"type:varchar(16);not null;uniqueIndex" json:"cardId"`   // Full 16-digit card number: product id + 10 generated.
	Name      string `gorm:"type:varchar(50);not null" json:"name"`                 // Holder first name.
	LastName  string `gorm:"type:varchar(50);not null" json:"lastName"`             // Holder last name.

	CreatedAt      time.Time `gorm:"not null" json:"createdAt"`      // Creation date.
	ExpirationDate time.Time `gorm:"not null" json:"expirationDate"` // Expires a fixed number of years after creation.

	Balance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"` // Remaining balance, never negative.
	Status  string          `gorm:"type:varchar(10);not null" json:"status"`              // One of INACTIVE, ACTIVE, BLOCKED.
}

// TableName returns the table name for Card.
func (Card) TableName() string {
	return "cards"
}

// Expired reports whether the card expiration date falls before the current day.
func (c *Card) Expired(now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return c.ExpirationDate.Before(today)
}
