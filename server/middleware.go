package server

import (
	"errors"
	"net/http"
	"strconv"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/server/response"
	"github.com/techagentng/cityalert/services/jwt"
	"gorm.io/gorm"
)

// Authorize validates the bearer token, rejects blacklisted tokens and puts
// the authenticated citizen into the gin context.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is blacklisted", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if isAdmin, _ := accessClaims["is_admin"].(bool); isAdmin {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.New("citizen account required", http.StatusForbidden))
			return
		}

		userIDValue := accessClaims["id"]
		var userID uint
		switch v := userIDValue.(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
			default:
				respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
			}
			return
		}

		if user.IsBlocked {
			respondAndAbort(c, "account is blocked", http.StatusForbidden, nil, errs.New("account is blocked", http.StatusForbidden))
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// AuthorizeAdmin guards the console routes; the token must carry the admin
// flag issued by the admin login.
func (s *Server) AuthorizeAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is blacklisted", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		isAdmin, _ := accessClaims["is_admin"].(bool)
		if !isAdmin {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.New("admin access required", http.StatusForbidden))
			return
		}

		var adminID uint
		if v, ok := accessClaims["id"].(float64); ok {
			adminID = uint(v)
		}

		c.Set("adminID", adminID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

func limitRateForAlertSubmission(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        alertRateKey,
		BeforeResponse: nil,
	})
}

func limitRateForPasswordReset(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        clientIPKey,
		BeforeResponse: nil,
	})
}

func alertRateKey(c *gin.Context) string {
	if userID, exists := c.Get("userID"); exists {
		if id, ok := userID.(uint); ok {
			return "alert:" + strconv.FormatUint(uint64(id), 10)
		}
	}
	return "alert:" + c.ClientIP()
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}
