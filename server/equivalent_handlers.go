package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/server/response"
)

func (s *Server) handleCreateEquivalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		coins, err := strconv.Atoi(c.PostForm("coins"))
		if err != nil || coins < 1 || coins > 999 {
			response.JSON(c, "coins must be between 1 and 999", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}
		name := c.PostForm("name")
		if len(name) < 2 {
			response.JSON(c, "name must be at least 2 characters", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		equivalent := models.Equivalent{Name: name, Coins: coins}
		if err := models.ValidateWhiteSpaces(&equivalent); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		_, fileHeader, fileErr := c.Request.FormFile("picture")
		if fileErr != nil {
			response.JSON(c, "picture is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		created, serviceErr := s.EquivalentService.CreateEquivalent(&equivalent, fileHeader)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "equivalent created", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleGetEquivalents() gin.HandlerFunc {
	return func(c *gin.Context) {
		equivalents, err := s.EquivalentService.GetAllEquivalents()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, equivalents, nil)
	}
}

func (s *Server) handleDeleteEquivalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		equivalentID, err := uintParam(c, "equivalentID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.EquivalentService.DeleteEquivalent(equivalentID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "equivalent deleted", http.StatusOK, nil, nil)
	}
}

// handleRedeemEquivalent places a redemption; the affordability check is
// atomic with the insert, so overspending concurrent requests cannot both
// pass.
func (s *Server) handleRedeemEquivalent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		var request models.RedeemRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, err := s.EquivalentService.RequestEquivalent(userID, request.EquivalentID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "redemption requested", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleGetMyRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		requests, err := s.EquivalentService.GetUserRequests(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, requests, nil)
	}
}

func (s *Server) handleGetEquivalentRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := s.EquivalentService.GetRequests()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, requests, nil)
	}
}

func (s *Server) handleDecideEquivalentRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uintParam(c, "requestID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var decision models.EquivalentRequestDecision
		if err := c.ShouldBindJSON(&decision); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.EquivalentService.DecideRequest(requestID, decision.Action); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "request "+decision.Action+"ed", http.StatusOK, nil, nil)
	}
}
