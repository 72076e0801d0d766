package api

import (
	"math/rand/v2"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edgarmunar/bankinc/internal/cards"
	"github.com/edgarmunar/bankinc/internal/http/api/handlers"
	"github.com/edgarmunar/bankinc/internal/transactions"
)

// RegisterRoutes registers the card and transaction endpoints on the engine.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, rng *rand.Rand) {
	if r == nil || conn == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(conn)
	r.GET("/healthz", healthHandler.Healthz)

	cardHandler := handlers.NewCardHandler(cards.NewService(conn, rng))
	card := r.Group("/card")
	card.GET("/number/:productId", cardHandler.GenerateNumber)
	card.POST("/create", cardHandler.Create)
	card.POST("/enroll", cardHandler.Enroll)
	card.POST("/balance", cardHandler.Recharge)
	card.GET("/balance/:cardId", cardHandler.Balance)
	card.GET("/:cardId", cardHandler.Get)
	card.DELETE("/:cardId", cardHandler.Block)

	transactionHandler := handlers.NewTransactionHandler(transactions.NewService(conn))
	transaction := r.Group("/transaction")
	transaction.POST("/purchase", transactionHandler.Purchase)
	transaction.POST("/anulation", transactionHandler.Anulate)
	transaction.GET("/:transactionId", transactionHandler.Get)
}
