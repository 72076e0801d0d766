package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/edgarmunar/bankinc/internal/cards"
)

// CardHandler serves card lifecycle and balance endpoints.
type CardHandler struct {
	svc *cards.Service
}

// NewCardHandler wires a card handler with its service dependency.
func NewCardHandler(svc *cards.Service) *CardHandler {
	return &CardHandler{svc: svc}
}

// GenerateNumber returns a fresh card number for a product.
func (h *CardHandler) GenerateNumber(c *gin.Context) {
	productID := c.Param("productId")
	if !isDigits(productID, 6) {
		writeBadRequest(c, "productId must be a 6-digit number")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardNumber": h.svc.GenerateNumber(productID)})
}

// createCardRequest captures the payload for creating a card.
type createCardRequest struct {
	ProductID string `json:"productId" binding:"required,len=6,numeric"` // First 6 digits of the card number.
	CardID    string `json:"cardId" binding:"required,len=16,numeric"`   // Full 16-digit card number.
	Name      string `json:"name" binding:"required"`                    // Holder first name.
	LastName  string `json:"lastName" binding:"required"`                // Holder last name.
}

// Create persists a new inactive card.
func (h *CardHandler) Create(c *gin.Context) {
	var body createCardRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		writeBindingError(c, errBind)
		return
	}

	card, errCreate := h.svc.Create(c.Request.Context(), body.ProductID, body.CardID, body.Name, body.LastName)
	if errCreate != nil {
		writeServiceError(c, errCreate)
		return
	}
	c.JSON(http.StatusOK, card)
}

// enrollCardRequest captures the payload for activating a card.
type enrollCardRequest struct {
	CardID string `json:"cardId" binding:"required,len=16,numeric"` // Card to activate.
}

// Enroll activates a card.
func (h *CardHandler) Enroll(c *gin.Context) {
	var body enrollCardRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		writeBindingError(c, errBind)
		return
	}

	card, errEnroll := h.svc.Enroll(c.Request.Context(), body.CardID)
	if errEnroll != nil {
		writeServiceError(c, errEnroll)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Block marks a card as blocked.
func (h *CardHandler) Block(c *gin.Context) {
	cardID := c.Param("cardId")
	if !isDigits(cardID, 16) {
		writeBadRequest(c, "cardId must be a 16-digit number")
		return
	}

	card, errBlock := h.svc.Block(c.Request.Context(), cardID)
	if errBlock != nil {
		writeServiceError(c, errBlock)
		return
	}
	c.JSON(http.StatusOK, card)
}

// rechargeRequest captures the payload for recharging a card balance.
type rechargeRequest struct {
	CardID  string          `json:"cardId" binding:"required,len=16,numeric"` // Card to recharge.
	Balance decimal.Decimal `json:"balance"`                                  // Amount to add; must be positive.
}

// Recharge adds funds to a card balance.
func (h *CardHandler) Recharge(c *gin.Context) {
	var body rechargeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		writeBindingError(c, errBind)
		return
	}

	card, errRecharge := h.svc.Recharge(c.Request.Context(), body.CardID, body.Balance)
	if errRecharge != nil {
		writeServiceError(c, errRecharge)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Balance returns the current balance of a card.
func (h *CardHandler) Balance(c *gin.Context) {
	cardID := c.Param("cardId")
	if !isDigits(cardID, 16) {
		writeBadRequest(c, "cardId must be a 16-digit number")
		return
	}

	balance, errBalance := h.svc.Balance(c.Request.Context(), cardID)
	if errBalance != nil {
		writeServiceError(c, errBalance)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Get returns the full card record.
func (h *CardHandler) Get(c *gin.Context) {
	cardID := c.Param("cardId")
	if !isDigits(cardID, 16) {
		writeBadRequest(c, "cardId must be a 16-digit number")
		return
	}

	card, errGet := h.svc.Get(c.Request.Context(), cardID)
	if errGet != nil {
		writeServiceError(c, errGet)
		return
	}
	c.JSON(http.StatusOK, card)
}
