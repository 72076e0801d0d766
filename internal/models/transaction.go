package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single purchase made with a card.
type Transaction struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	CardRef uint64 `gorm:"not null;index" json:"-"`                 // Owning card row.
	Card    *Card  `gorm:"foreignKey:CardRef" json:"-"`             // Owning card record.
	CardID  string `gorm:"type:varchar(16);not null" json:"cardId"` // External id of the owning card, fixed at creation.

	Price           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"` // Amount debited from the card.
	TransactionDate time.Time       `gorm:"not null" json:"transactionDate"`          // Purchase timestamp.

	Anulated   bool       `gorm:"not null;default:false" json:"anulated"` // Set once by a successful reversal.
	AnulatedAt *time.Time `json:"anulatedAt,omitempty"`                   // Reversal timestamp, if anulated.
}

// TableName returns the table name for Transaction.
func (Transaction) TableName() string {
	return "transactions"
}
