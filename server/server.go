package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	"github.com/techagentng/cityalert/mailingservices"
	"github.com/techagentng/cityalert/services"
)

// Server wires the HTTP layer to the services and repositories
type Server struct {
	Config *config.Config
	Mail   *mailingservices.Mailgun
	DB     db.GormDB

	AuthRepository       db.AuthRepository
	AlertRepository      db.AlertRepository
	GuideRepository      db.GuideRepository
	MissionRepository    db.MissionRepository
	EquivalentRepository db.EquivalentRepository
	PointsRepository     db.PointsRepository

	AuthService       services.AuthService
	AlertService      services.AlertService
	GuideService      services.GuideService
	MissionService    services.MissionService
	EquivalentService services.EquivalentService
	PointsService     services.PointsService
	MediaService      services.MediaService
}

func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	r := s.setupRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}

// decode binds the JSON body into v, translating binding failures
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return nil
}
