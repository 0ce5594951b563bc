package main

import (
	"log"

	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	"github.com/techagentng/cityalert/mailingservices"
	"github.com/techagentng/cityalert/server"
	"github.com/techagentng/cityalert/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize Mailgun client
	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)
	if err := db.SeedRoles(gormDB.DB); err != nil {
		log.Fatalf("error seeding roles: %v", err)
	}
	if err := db.SeedCampaigns(gormDB.DB); err != nil {
		log.Fatalf("error seeding campaigns: %v", err)
	}
	if err := db.SeedDefaultAdmin(gormDB.DB); err != nil {
		log.Fatalf("error seeding default admin: %v", err)
	}

	authRepo := db.NewAuthRepo(gormDB)
	alertRepo := db.NewAlertRepo(gormDB)
	guideRepo := db.NewGuideRepo(gormDB)
	missionRepo := db.NewMissionRepo(gormDB)
	equivalentRepo := db.NewEquivalentRepo(gormDB)
	pointsRepo := db.NewPointsRepo(gormDB)

	mediaService := services.NewMediaService(conf)
	authService := services.NewAuthService(authRepo, conf)
	alertService := services.NewAlertService(alertRepo, guideRepo, mediaService, conf)
	guideService := services.NewGuideService(guideRepo, conf)
	missionService := services.NewMissionService(missionRepo, mediaService, conf)
	equivalentService := services.NewEquivalentService(equivalentRepo, mediaService, conf)
	pointsService := services.NewPointsService(pointsRepo, conf)

	s := &server.Server{
		Mail:   mailgunClient,
		Config: conf,
		DB:     *gormDB,

		AuthRepository:       authRepo,
		AlertRepository:      alertRepo,
		GuideRepository:      guideRepo,
		MissionRepository:    missionRepo,
		EquivalentRepository: equivalentRepo,
		PointsRepository:     pointsRepo,

		AuthService:       authService,
		AlertService:      alertService,
		GuideService:      guideService,
		MissionService:    missionService,
		EquivalentService: equivalentService,
		PointsService:     pointsService,
		MediaService:      mediaService,
	}

	s.Start()
}
