package cards

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/edgarmunar/bankinc/internal/models"
)

func setupCardsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cards_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.Card{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := setupCardsDB(t)
	return NewService(conn, rand.New(rand.NewPCG(1, 2))), conn
}

func TestGenerateNumber(t *testing.T) {
	svc, _ := newTestService(t)

	number := svc.GenerateNumber("654321")
	if len(number) != 16 {
		t.Fatalf("expected 16 digits, got %d (%s)", len(number), number)
	}
	if number[:6] != "654321" {
		t.Fatalf("expected product id prefix, got %s", number)
	}
	for i := 6; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			t.Fatalf("non-digit suffix character in %s", number)
		}
	}

	if other := svc.GenerateNumber("654321"); other == number {
		t.Fatalf("expected distinct suffixes, got %s twice", number)
	}
}

func TestCreateCardDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	card, errCreate := svc.Create(context.Background(), "102030", "1020301234567890", "Edgar", "Munar")
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	if card.Status != models.CardStatusInactive {
		t.Fatalf("expected INACTIVE, got %s", card.Status)
	}
	if !card.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", card.Balance)
	}
	if want := card.CreatedAt.AddDate(3, 0, 0); !card.ExpirationDate.Equal(want) {
		t.Fatalf("expected expiration %s, got %s", want, card.ExpirationDate)
	}
	if card.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestCreateCardDuplicateNumber(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Other", "Holder"); errCreate != ErrCardExists {
		t.Fatalf("expected ErrCardExists, got %v", errCreate)
	}
}

func TestEnrollCard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	card, errEnroll := svc.Enroll(ctx, "1020301234567890")
	if errEnroll != nil {
		t.Fatalf("enroll: %v", errEnroll)
	}
	if card.Status != models.CardStatusActive {
		t.Fatalf("expected ACTIVE, got %s", card.Status)
	}

	if _, errEnroll := svc.Enroll(ctx, "1020301234567890"); errEnroll != ErrCardAlreadyActive {
		t.Fatalf("expected ErrCardAlreadyActive, got %v", errEnroll)
	}
	stored, errGet := svc.Get(ctx, "1020301234567890")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if stored.Status != models.CardStatusActive {
		t.Fatalf("failed enroll must not change state, got %s", stored.Status)
	}

	if _, errEnroll := svc.Enroll(ctx, "9999999999999999"); errEnroll != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", errEnroll)
	}
}

// A blocked card can still be enrolled; the rule set exposes no guard on that
// path, so the behavior is preserved as-is.
func TestEnrollBlockedCardIsAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if _, errBlock := svc.Block(ctx, "1020301234567890"); errBlock != nil {
		t.Fatalf("block: %v", errBlock)
	}

	card, errEnroll := svc.Enroll(ctx, "1020301234567890")
	if errEnroll != nil {
		t.Fatalf("enroll blocked card: %v", errEnroll)
	}
	if card.Status != models.CardStatusActive {
		t.Fatalf("expected ACTIVE, got %s", card.Status)
	}
}

func TestBlockCard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	card, errBlock := svc.Block(ctx, "1020301234567890")
	if errBlock != nil {
		t.Fatalf("block inactive card: %v", errBlock)
	}
	if card.Status != models.CardStatusBlocked {
		t.Fatalf("expected BLOCKED, got %s", card.Status)
	}

	if _, errBlock := svc.Block(ctx, "1020301234567890"); errBlock != ErrCardAlreadyBlocked {
		t.Fatalf("expected ErrCardAlreadyBlocked, got %v", errBlock)
	}

	if _, errBlock := svc.Block(ctx, "9999999999999999"); errBlock != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", errBlock)
	}
}

func TestRechargeBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	if _, errRecharge := svc.Recharge(ctx, "1020301234567890", decimal.Zero); errRecharge != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", errRecharge)
	}
	if _, errRecharge := svc.Recharge(ctx, "1020301234567890", decimal.NewFromInt(-10)); errRecharge != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", errRecharge)
	}
	balance, errBalance := svc.Balance(ctx, "1020301234567890")
	if errBalance != nil {
		t.Fatalf("balance: %v", errBalance)
	}
	if !balance.IsZero() {
		t.Fatalf("failed recharge must not change balance, got %s", balance)
	}

	if _, errRecharge := svc.Recharge(ctx, "1020301234567890", decimal.RequireFromString("100.00")); errRecharge != nil {
		t.Fatalf("recharge: %v", errRecharge)
	}
	card, errRecharge := svc.Recharge(ctx, "1020301234567890", decimal.RequireFromString("50.00"))
	if errRecharge != nil {
		t.Fatalf("recharge: %v", errRecharge)
	}
	if !card.Balance.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected balance 150.00, got %s", card.Balance)
	}

	stored, errGet := svc.Balance(ctx, "1020301234567890")
	if errGet != nil {
		t.Fatalf("balance: %v", errGet)
	}
	if !stored.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected persisted balance 150.00, got %s", stored)
	}

	if _, errRecharge := svc.Recharge(ctx, "9999999999999999", decimal.NewFromInt(10)); errRecharge != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", errRecharge)
	}
}

func TestGetCard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, errGet := svc.Get(ctx, "1020301234567890"); errGet != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", errGet)
	}
	if _, errBalance := svc.Balance(ctx, "1020301234567890"); errBalance != ErrCardNotFound {
		t.Fatalf("expected ErrCardNotFound, got %v", errBalance)
	}

	if _, errCreate := svc.Create(ctx, "102030", "1020301234567890", "Edgar", "Munar"); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	card, errGet := svc.Get(ctx, "1020301234567890")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if card.CardID != "1020301234567890" || card.Name != "Edgar" || card.LastName != "Munar" {
		t.Fatalf("unexpected card record: %+v", card)
	}
}
