package cards

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/edgarmunar/bankinc/internal/models"
	"github.com/edgarmunar/bankinc/internal/settings"
)

// cardNumberLength is the full length of an external card id.
const cardNumberLength = 16

// Service manages card creation, lifecycle transitions and balance operations.
type Service struct {
	db  *gorm.DB   // Database handle for card rows.
	rng *rand.Rand // Source for generated card number suffixes.
}

// NewService wires a card service with its database and random source.
func NewService(db *gorm.DB, rng *rand.Rand) *Service {
	return &Service{db: db, rng: rng}
}

// GenerateNumber builds a 16-digit card number: the 6-digit product id
// followed by uniformly random decimal digits. Uniqueness is not checked
// here; the unique index on cards enforces it at persistence time.
func (s *Service) GenerateNumber(productID string) string {
	var sb strings.Builder
	sb.Grow(cardNumberLength)
	sb.WriteString(productID)
	for sb.Len() < cardNumberLength {
		sb.WriteByte(byte('0' + s.rng.IntN(10)))
	}
	return sb.String()
}

// Create persists a new inactive card with zero balance. The expiration date
// is the creation date plus the configured validity period.
func (s *Service) Create(ctx context.Context, productID, cardID, name, lastName string) (*models.Card, error) {
	now := time.Now().UTC()
	createdAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	card := models.Card{
		ProductID:      productID,
		CardID:         cardID,
		Name:           name,
		LastName:       lastName,
		CreatedAt:      createdAt,
		ExpirationDate: createdAt.AddDate(settings.CardValidityYears(), 0, 0),
		Balance:        decimal.Zero,
		Status:         models.CardStatusInactive,
	}

	if errCreate := s.db.WithContext(ctx).Create(&card).Error; errCreate != nil {
		if isDuplicateKey(errCreate) {
			return nil, ErrCardExists
		}
		return nil, errCreate
	}
	return &card, nil
}

// Enroll activates a card. Enrolling an already active card fails; a blocked
// card may still be enrolled, matching the original rule set.
func (s *Service) Enroll(ctx context.Context, cardID string) (*models.Card, error) {
	card, errFind := s.findByCardID(ctx, cardID)
	if errFind != nil {
		return nil, errFind
	}
	if card.Status == models.CardStatusActive {
		return nil, ErrCardAlreadyActive
	}

	if errUpdate := s.db.WithContext(ctx).Model(card).
		Update("status", models.CardStatusActive).Error; errUpdate != nil {
		return nil, errUpdate
	}
	return card, nil
}

// Block marks a card as blocked. Blocking an already blocked card fails.
func (s *Service) Block(ctx context.Context, cardID string) (*models.Card, error) {
	card, errFind := s.findByCardID(ctx, cardID)
	if errFind != nil {
		return nil, errFind
	}
	if card.Status == models.CardStatusBlocked {
		return nil, ErrCardAlreadyBlocked
	}

	if errUpdate := s.db.WithContext(ctx).Model(card).
		Update("status", models.CardStatusBlocked).Error; errUpdate != nil {
		return nil, errUpdate
	}
	return card, nil
}

// Recharge adds a positive amount to the card balance.
func (s *Service) Recharge(ctx context.Context, cardID string, amount decimal.Decimal) (*models.Card, error) {
	card, errFind := s.findByCardID(ctx, cardID)
	if errFind != nil {
		return nil, errFind
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	card.Balance = card.Balance.Add(amount)
	if errUpdate := s.db.WithContext(ctx).Model(card).
		Update("balance", card.Balance).Error; errUpdate != nil {
		return nil, errUpdate
	}
	return card, nil
}

// Balance returns the current balance of a card.
func (s *Service) Balance(ctx context.Context, cardID string) (decimal.Decimal, error) {
	card, errFind := s.findByCardID(ctx, cardID)
	if errFind != nil {
		return decimal.Decimal{}, errFind
	}
	return card.Balance, nil
}

// Get returns the full card record.
func (s *Service) Get(ctx context.Context, cardID string) (*models.Card, error) {
	return s.findByCardID(ctx, cardID)
}

// findByCardID loads a card by its external 16-digit id.
func (s *Service) findByCardID(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	if errFind := s.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		First(&card).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, errFind
	}
	return &card, nil
}

// isDuplicateKey recognizes unique index violations across dialects.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
