package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/contribution-analyzer/internal/middleware"
	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError writes {"error": ...} with the upstream status when one is known,
// 400 for validation failures and 500 otherwise
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	status := http.StatusInternalServerError
	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0 {
		status = upstreamErr.StatusCode
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
		"status":     status,
	}).Error("Request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
