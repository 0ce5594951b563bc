package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"gorm.io/gorm"
)

// JSON writes the common response envelope. Business-rule rejections carry
// status "warning", infra failures "error", everything else "ok" — the same
// tri-state the mobile and console clients switch on.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	label := "ok"
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
		if errs.IsWarning(err) {
			label = "warning"
		} else {
			label = "error"
		}
	}

	c.JSON(status, gin.H{
		"status":  label,
		"message": message,
		"data":    data,
		"errors":  errMessage,
	})
}

// HandleErrors maps service/repository errors to HTTP responses
func HandleErrors(c *gin.Context, err error) {
	var e *errs.Error
	switch {
	case errors.As(err, &e):
		JSON(c, e.Message, e.Status, nil, e)
	case errors.Is(err, gorm.ErrRecordNotFound):
		JSON(c, "not found", http.StatusNotFound, nil, errs.ErrNotFound)
	default:
		JSON(c, "internal server error", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
	}
}
