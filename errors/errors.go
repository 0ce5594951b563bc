package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error wraps a message with the HTTP status it should surface as
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = errors.New("user inactive")

	// Business-rule rejections. These surface as a "warning" status in the
	// response envelope, never as 5xx.
	ErrInsufficientBalance   = New("insufficient coin balance", http.StatusUnprocessableEntity)
	ErrAlertAlreadyClosed    = New("alert is already closed", http.StatusConflict)
	ErrAlreadyConfirmed      = New("alert already confirmed by this user", http.StatusConflict)
	ErrOwnAlertConfirmation  = New("cannot confirm your own alert", http.StatusConflict)
	ErrCampaignActive        = New("campaign is active", http.StatusForbidden)
	ErrRequestAlreadyDecided = New("request has already been decided", http.StatusConflict)
)

// IsWarning reports whether err is a business-rule rejection rather than an
// infrastructure failure.
func IsWarning(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Status >= 400 && e.Status < 500 && e.Status != http.StatusInternalServerError
}

// GetUniqueContraintError maps a postgres unique violation to a friendly message
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("user with this email already exists", http.StatusConflict)
	case strings.Contains(msg, "telephone"):
		return New("user with this telephone already exists", http.StatusConflict)
	default:
		return New("duplicate record", http.StatusConflict)
	}
}

// ErrorHandler is passed to the rate limiter middleware
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"status":  "error",
		"message": "too many requests, try again later",
	})
}
