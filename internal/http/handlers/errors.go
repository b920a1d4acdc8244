package handlers

import (
	"net/http"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Capacity
// shortfall carries its own code so the UI can say "penuh" instead of a
// generic failure.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalidRange(err), domain.IsInvalidSeatCount(err), domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsInsufficientCapacity(err):
		respondError(c, http.StatusConflict, "insufficient_capacity", "kursi tidak cukup, trip penuh untuk segmen ini", nil)
	case domain.IsConfirmedRelease(err):
		respondError(c, http.StatusConflict, "cannot_release_confirmed", err.Error(), nil)
	case domain.IsNotHeld(err):
		respondError(c, http.StatusConflict, "reservation_not_held", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsConfiguration(err):
		respondError(c, http.StatusInternalServerError, "configuration_error", "data referensi rute/tarif bermasalah", nil)
	case domain.IsLedgerInvariant(err):
		respondError(c, http.StatusInternalServerError, "ledger_invariant", "terjadi kesalahan internal pada ledger", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
