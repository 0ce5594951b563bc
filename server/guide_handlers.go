package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/server/response"
)

func (s *Server) handleCreateGuide() gin.HandlerFunc {
	return func(c *gin.Context) {
		var guide models.Guide
		if err := c.ShouldBindJSON(&guide); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := models.ValidateWhiteSpaces(&guide); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.GuideService.CreateGuide(&guide); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "guide created", http.StatusCreated, guide, nil)
	}
}

func (s *Server) handleGetGuides() gin.HandlerFunc {
	return func(c *gin.Context) {
		guides, err := s.GuideService.GetGuidesWithZoneCounts()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, guides, nil)
	}
}

func (s *Server) handleGetGuide() gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := uintParam(c, "guideID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		guide, err := s.GuideService.GetGuide(guideID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, guide, nil)
	}
}

func (s *Server) handleUpdateGuideSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := uintParam(c, "guideID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var settings models.GuideSettingsRequest
		if err := c.ShouldBindJSON(&settings); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		guide, serviceErr := s.GuideService.UpdateGuideSettings(guideID, &settings)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "guide settings updated", http.StatusOK, guide, nil)
	}
}

func (s *Server) handleDeleteGuide() gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := uintParam(c, "guideID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.GuideService.DeleteGuide(guideID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "guide deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCreateZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := uintParam(c, "guideID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		name := c.PostForm("name")
		_, fileHeader, fileErr := c.Request.FormFile("coordinates")
		if fileErr != nil {
			response.JSON(c, "coordinates file is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		zone, serviceErr := s.GuideService.CreateZone(guideID, name, fileHeader)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "zone created", http.StatusCreated, zone, nil)
	}
}

func (s *Server) handleGetZones() gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := s.GuideService.GetAllZones()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, zones, nil)
	}
}

func (s *Server) handleGetZonePoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneID, err := uintParam(c, "zoneID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		points, serviceErr := s.GuideService.GetZonePoints(zoneID)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "", http.StatusOK, points, nil)
	}
}

func (s *Server) handleDeleteZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneID, err := uintParam(c, "zoneID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.GuideService.DeleteZone(zoneID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "zone deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCreateRoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := uintParam(c, "guideID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		name := c.PostForm("name")
		_, fileHeader, fileErr := c.Request.FormFile("coordinates")
		if fileErr != nil {
			response.JSON(c, "coordinates file is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		road, serviceErr := s.GuideService.CreateRoad(guideID, name, fileHeader)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "road created", http.StatusCreated, road, nil)
	}
}

func (s *Server) handleGetRoads() gin.HandlerFunc {
	return func(c *gin.Context) {
		roads, err := s.GuideService.GetAllRoads()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, roads, nil)
	}
}

func (s *Server) handleGetRoadPoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		roadID, err := uintParam(c, "roadID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		points, serviceErr := s.GuideService.GetRoadPoints(roadID)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "", http.StatusOK, points, nil)
	}
}

func (s *Server) handleDeleteRoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		roadID, err := uintParam(c, "roadID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.GuideService.DeleteRoad(roadID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "road deleted", http.StatusOK, nil, nil)
	}
}
