package server

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/server/response"
)

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errs.New(name+" must be a positive integer", http.StatusBadRequest)
	}
	return uint(v), nil
}

func (s *Server) handleRaiseAlert() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		zoneID, err := strconv.ParseUint(c.PostForm("zone_id"), 10, 32)
		if err != nil {
			response.JSON(c, "zone_id must be a positive integer", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}
		latitude, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
		if err != nil {
			response.JSON(c, "latitude is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}
		longitude, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
		if err != nil {
			response.JSON(c, "longitude is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		request := models.RaiseAlertRequest{
			Category:  c.PostForm("category"),
			Message:   c.PostForm("message"),
			Latitude:  latitude,
			Longitude: longitude,
			ZoneID:    uint(zoneID),
		}
		if err := models.ValidateWhiteSpaces(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if request.Category == "" || request.Message == "" {
			response.JSON(c, "category and message are required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var photo *multipart.FileHeader
		if _, fh, err := c.Request.FormFile("photo"); err == nil {
			photo = fh
		}

		alert, err := s.AlertService.RaiseAlert(userID, &request, photo)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "alert raised", http.StatusCreated, alert, nil)
	}
}

func (s *Server) handleConfirmAlert() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		alertID, err := uintParam(c, "alertID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		confirmation, err := s.AlertService.ConfirmAlert(userID, alertID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "alert confirmed", http.StatusCreated, confirmation, nil)
	}
}

func (s *Server) handleCloseAlert() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		alertID, err := uintParam(c, "alertID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		closure, err := s.AlertService.CloseAlert(userID, alertID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "alert closed", http.StatusCreated, closure, nil)
	}
}

func (s *Server) handleGetAlert() gin.HandlerFunc {
	return func(c *gin.Context) {
		alertID, err := uintParam(c, "alertID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		alert, err := s.AlertService.GetAlert(alertID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, alert, nil)
	}
}

func (s *Server) handleGetAllAlerts() gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := s.AlertService.GetAllAlerts()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, alerts, nil)
	}
}

func (s *Server) handleGetAlertsByZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneID, err := uintParam(c, "zoneID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		alerts, err := s.AlertService.GetAlertsByZone(zoneID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, alerts, nil)
	}
}

// handleGetBalance derives the caller's spendable coin balance on read
func (s *Server) handleGetBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		balance, err := s.PointsService.UserBalance(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"balance": balance}, nil)
	}
}

// handleGetUserBalance lets the console look up any citizen's balance
func (s *Server) handleGetUserBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uintParam(c, "userID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		balance, err := s.PointsService.UserBalance(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"user_id": userID, "balance": balance}, nil)
	}
}
