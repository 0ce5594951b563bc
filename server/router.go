package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5})
	limitAlerts := limitRateForAlertSubmission(store)

	resetStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Hour, Limit: 3})
	limitReset := limitRateForPasswordReset(resetStore)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/auth/admin/login", s.handleAdminLogin())
	apirouter.POST("/password/forgot", limitReset, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/equivalents", s.handleGetEquivalents())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/image", s.handleUpdateProfileImage())
	authorized.GET("/me/balance", s.handleGetBalance())
	authorized.GET("/me/requests", s.handleGetMyRequests())

	authorized.POST("/alerts", limitAlerts, s.handleRaiseAlert())
	authorized.GET("/alerts/:alertID", s.handleGetAlert())
	authorized.POST("/alerts/:alertID/confirm", s.handleConfirmAlert())
	authorized.POST("/alerts/:alertID/close", s.handleCloseAlert())
	authorized.GET("/zones", s.handleGetZones())
	authorized.GET("/zones/:zoneID/alerts", s.handleGetAlertsByZone())
	authorized.GET("/zones/:zoneID/points", s.handleGetZonePoints())
	authorized.GET("/roads", s.handleGetRoads())
	authorized.GET("/roads/:roadID/points", s.handleGetRoadPoints())

	authorized.GET("/missions/actions", s.handleGetActions())
	authorized.POST("/missions/actions/:actionID/complete", s.handleCompleteAction())
	authorized.GET("/missions/paparazzi", s.handleGetPaparazzi())
	authorized.POST("/missions/paparazzi/:missionID/submit", s.handleSubmitPaparazzi())
	authorized.GET("/missions/quizzes", s.handleGetQuizzes())
	authorized.POST("/missions/quizzes/:quizID/answer", s.handleAnswerQuiz())

	authorized.POST("/equivalents/redeem", s.handleRedeemEquivalent())

	admin := apirouter.Group("/admin")
	admin.Use(s.AuthorizeAdmin())
	admin.GET("/logout", s.handleLogout())
	admin.GET("/users", s.handleGetAllUsers())
	admin.GET("/users/:userID/balance", s.handleGetUserBalance())
	admin.GET("/alerts", s.handleGetAllAlerts())

	admin.POST("/guides", s.handleCreateGuide())
	admin.GET("/guides", s.handleGetGuides())
	admin.GET("/guides/:guideID", s.handleGetGuide())
	admin.PUT("/guides/:guideID/settings", s.handleUpdateGuideSettings())
	admin.DELETE("/guides/:guideID", s.handleDeleteGuide())
	admin.POST("/guides/:guideID/zones", s.handleCreateZone())
	admin.POST("/guides/:guideID/roads", s.handleCreateRoad())
	admin.GET("/zones", s.handleGetZones())
	admin.GET("/zones/:zoneID/points", s.handleGetZonePoints())
	admin.DELETE("/zones/:zoneID", s.handleDeleteZone())
	admin.GET("/roads", s.handleGetRoads())
	admin.GET("/roads/:roadID/points", s.handleGetRoadPoints())
	admin.DELETE("/roads/:roadID", s.handleDeleteRoad())

	admin.POST("/missions/quizzes", s.handleCreateQuiz())
	admin.GET("/missions/quizzes", s.handleGetQuizzes())
	admin.PUT("/missions/quizzes/:quizID", s.handleUpdateQuiz())
	admin.DELETE("/missions/quizzes/:quizID", s.handleDeleteQuiz())
	admin.POST("/missions/actions", s.handleCreateAction())
	admin.GET("/missions/actions", s.handleGetActions())
	admin.PUT("/missions/actions/:actionID", s.handleUpdateAction())
	admin.DELETE("/missions/actions/:actionID", s.handleDeleteAction())
	admin.POST("/missions/paparazzi", s.handleCreatePaparazzi())
	admin.GET("/missions/paparazzi", s.handleGetPaparazzi())
	admin.DELETE("/missions/paparazzi/:missionID", s.handleDeletePaparazzi())
	admin.GET("/missions/completions/actions", s.handleGetActionCompletions())
	admin.GET("/missions/completions/paparazzi", s.handleGetPaparazziCompletions())
	admin.PUT("/missions/completions/paparazzi/:uniqueID/status", s.handleUpdatePaparazziStatus())
	admin.PUT("/campaigns/:campaignID/toggle", s.handleToggleCampaign())

	admin.POST("/equivalents", s.handleCreateEquivalent())
	admin.GET("/equivalents", s.handleGetEquivalents())
	admin.DELETE("/equivalents/:equivalentID", s.handleDeleteEquivalent())
	admin.GET("/equivalents/requests", s.handleGetEquivalentRequests())
	admin.PUT("/equivalents/requests/:requestID/decide", s.handleDecideEquivalentRequest())
}
