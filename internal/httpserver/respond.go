package httpserver

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps domain error kinds to HTTP statuses and renders the
// {"error": msg} envelope the frontend expects.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Timestamp formats matching the frontend's display expectations.
const (
	timestampLayout = "Jan 02, 2006 at 03:04 PM"
	dateLayout      = "Jan 02, 2006"
	joinedLayout    = "January 02, 2006"
)

func formatTimestamp(t time.Time) string { return t.Format(timestampLayout) }
func formatDate(t time.Time) string      { return t.Format(dateLayout) }
