package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/internal/services"
)

// respondServiceError maps a service error onto the uniform failure envelope.
// Internal failures are logged with their cause but never expose it.
func respondServiceError(ctx *gin.Context, err error) {
	var svcErr *services.Error

	if errors.As(err, &svcErr) {
		if svcErr.Code == services.CodeInternalError {
			log.Printf("Service failure: %v", svcErr.Unwrap())
		}

		ctx.JSON(svcErr.Status, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	log.Printf("Unexpected error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": services.CodeInternalError})
}
