package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/edgarmunar/bankinc/internal/transactions"
)

// minPurchasePrice is the smallest accepted purchase amount.
var minPurchasePrice = decimal.New(1, -2) // 0.01

// TransactionHandler serves purchase and anulation endpoints.
type TransactionHandler struct {
	svc *transactions.Service
}

// NewTransactionHandler wires a transaction handler with its service dependency.
func NewTransactionHandler(svc *transactions.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// purchaseRequest captures the payload for a purchase.
type purchaseRequest struct {
	CardID string          `json:"cardId" binding:"required,len=16,numeric"` // Card paying for the purchase.
	Price  decimal.Decimal `json:"price"`                                    // Purchase amount; at least 0.01.
}

// Purchase debits a card and records the transaction.
func (h *TransactionHandler) Purchase(c *gin.Context) {
	var body purchaseRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		writeBindingError(c, errBind)
		return
	}
	if body.Price.LessThan(minPurchasePrice) {
		writeBadRequest(c, "price: must be at least 0.01")
		return
	}

	txn, errPurchase := h.svc.Purchase(c.Request.Context(), body.CardID, body.Price)
	if errPurchase != nil {
		writeServiceError(c, errPurchase)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// Get returns a transaction by its internal id.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("transactionId"), 10, 64)
	if errParse != nil {
		writeBadRequest(c, "transactionId must be numeric")
		return
	}

	txn, errGet := h.svc.Get(c.Request.Context(), id)
	if errGet != nil {
		writeServiceError(c, errGet)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// anulationRequest captures the payload for reversing a purchase.
type anulationRequest struct {
	CardID        string `json:"cardId" binding:"required,len=16,numeric"` // Card the transaction belongs to.
	TransactionID string `json:"transactionId" binding:"required,numeric"` // Transaction to reverse.
}

// Anulate reverses a purchase and credits the card balance.
func (h *TransactionHandler) Anulate(c *gin.Context) {
	var body anulationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		writeBindingError(c, errBind)
		return
	}
	id, errParse := strconv.ParseUint(body.TransactionID, 10, 64)
	if errParse != nil {
		writeBadRequest(c, "transactionId: must be numeric")
		return
	}

	anulatedID, errAnulate := h.svc.Anulate(c.Request.Context(), body.CardID, id)
	if errAnulate != nil {
		writeServiceError(c, errAnulate)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "transaction anulated successfully",
		"transactionId": strconv.FormatUint(anulatedID, 10),
	})
}
