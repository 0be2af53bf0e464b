package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filevault-api/internal/application/services"
	"filevault-api/internal/domain/user"
)

// writeError maps service errors to responses. Anything unrecognised is a
// 500 whose details only reach the log.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case services.IsInvalidName(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
	case errors.Is(err, services.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, user.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(op+" error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
