package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/edgarmunar/bankinc/internal/cards"
	"github.com/edgarmunar/bankinc/internal/transactions"
)

// errorResponse is the JSON error envelope for every failed request.
type errorResponse struct {
	Message    string `json:"message"`    // Human-readable error description.
	StatusCode int    `json:"statusCode"` // Mirrors the HTTP status code.
}

// init makes validator report json field names instead of Go field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// writeBadRequest sends a 400 with the given message.
func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	})
}

// writeBindingError formats a body binding failure, listing every failing field.
func writeBindingError(c *gin.Context, errBind error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(errBind, &fieldErrs) {
		writeBadRequest(c, "invalid json")
		return
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+": "+fieldMessage(fe))
	}
	writeBadRequest(c, strings.Join(parts, ", "))
}

// fieldMessage translates a validator tag into a readable reason.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be a " + fe.Param() + "-digit number"
	case "numeric":
		return "must be numeric"
	default:
		return "is invalid"
	}
}

// domainErrs lists every error that maps to a 400 response.
var domainErrs = []error{
	cards.ErrCardNotFound,
	cards.ErrCardExists,
	cards.ErrCardAlreadyActive,
	cards.ErrCardAlreadyBlocked,
	cards.ErrInvalidAmount,
	transactions.ErrTransactionNotFound,
	transactions.ErrCardBlocked,
	transactions.ErrCardNotActive,
	transactions.ErrCardExpired,
	transactions.ErrInsufficientFunds,
	transactions.ErrCardMismatch,
	transactions.ErrAlreadyAnulated,
	transactions.ErrReversalWindowExpired,
}

// writeServiceError maps domain errors to 400 and masks everything else as 500.
func writeServiceError(c *gin.Context, err error) {
	for _, domainErr := range domainErrs {
		if errors.Is(err, domainErr) {
			writeBadRequest(c, err.Error())
			return
		}
	}
	log.WithError(err).Error("unhandled service error")
	c.JSON(http.StatusInternalServerError, errorResponse{
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
	})
}

// isDigits reports whether s consists of exactly n decimal digits.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
