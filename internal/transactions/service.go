package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/edgarmunar/bankinc/internal/cards"
	"github.com/edgarmunar/bankinc/internal/db"
	"github.com/edgarmunar/bankinc/internal/models"
	"github.com/edgarmunar/bankinc/internal/settings"
)

// Service executes purchases against card balances and reverses them.
type Service struct {
	db *gorm.DB // Database handle for card and transaction rows.
}

// NewService wires a transaction service with its database dependency.
func NewService(conn *gorm.DB) *Service {
	return &Service{db: conn}
}

// Purchase debits the card balance and records a transaction. The debit and
// the insert run in one database transaction; either both land or neither.
func (s *Service) Purchase(ctx context.Context, cardID string, price decimal.Decimal) (*models.Transaction, error) {
	var txn models.Transaction

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, errFind := lockCardByCardID(tx, cardID)
		if errFind != nil {
			return errFind
		}

		now := time.Now().UTC()
		switch {
		case card.Status == models.CardStatusBlocked:
			return ErrCardBlocked
		case card.Status != models.CardStatusActive:
			return ErrCardNotActive
		case card.Expired(now):
			return ErrCardExpired
		case card.Balance.LessThan(price):
			return ErrInsufficientFunds
		}

		if errDebit := tx.Model(card).
			Update("balance", card.Balance.Sub(price)).Error; errDebit != nil {
			return errDebit
		}

		txn = models.Transaction{
			CardRef:         card.ID,
			CardID:          card.CardID,
			Price:           price,
			TransactionDate: now,
		}
		return tx.Create(&txn).Error
	})
	if errTx != nil {
		return nil, errTx
	}
	return &txn, nil
}

// Get returns a transaction by its internal id.
func (s *Service) Get(ctx context.Context, id uint64) (*models.Transaction, error) {
	var txn models.Transaction
	if errFind := s.db.WithContext(ctx).First(&txn, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, errFind
	}
	return &txn, nil
}

// Anulate reverses a purchase: it marks the transaction anulated and credits
// the price back to the card. Both writes run in one database transaction.
// A transaction can be anulated once, and only within the reversal window.
func (s *Service) Anulate(ctx context.Context, cardID string, transactionID uint64) (uint64, error) {
	var anulatedID uint64

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, errFind := lockCardByCardID(tx, cardID)
		if errFind != nil {
			return errFind
		}

		var txn models.Transaction
		if errFindTxn := db.WithUpdateLock(tx).
			First(&txn, transactionID).Error; errFindTxn != nil {
			if errors.Is(errFindTxn, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return errFindTxn
		}

		now := time.Now().UTC()
		switch {
		case txn.CardID != card.CardID:
			return ErrCardMismatch
		case txn.Anulated:
			return ErrAlreadyAnulated
		case now.Sub(txn.TransactionDate) > settings.ReversalWindow():
			return ErrReversalWindowExpired
		}

		if errUpdate := tx.Model(&txn).Updates(map[string]any{
			"anulated":    true,
			"anulated_at": now,
		}).Error; errUpdate != nil {
			return errUpdate
		}

		if errCredit := tx.Model(card).
			Update("balance", card.Balance.Add(txn.Price)).Error; errCredit != nil {
			return errCredit
		}

		anulatedID = txn.ID
		return nil
	})
	if errTx != nil {
		return 0, errTx
	}
	return anulatedID, nil
}

// lockCardByCardID loads a card by external id, holding a row lock where the
// dialect supports one.
func lockCardByCardID(tx *gorm.DB, cardID string) (*models.Card, error) {
	var card models.Card
	if errFind := db.WithUpdateLock(tx).
		Where("card_id = ?", cardID).
		First(&card).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, cards.ErrCardNotFound
		}
		return nil, errFind
	}
	return &card, nil
}
