package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedCampaigns makes sure the three campaign rows exist so the console
// toggle endpoint always has something to flip.
func SeedCampaigns(db *gorm.DB) error {
	types := []string{
		models.CampaignMissionAction,
		models.CampaignMissionPaparazzi,
		models.CampaignQuiz,
	}
	for _, t := range types {
		campaign := models.MissionCampaign{CampaignType: t}
		if err := db.FirstOrCreate(&campaign, models.MissionCampaign{CampaignType: t}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaultAdmin creates the initial console operator if none exists
func SeedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.AdminUser{
		Username:       "admin",
		HashedPassword: string(hashed),
	}
	return db.Create(&admin).Error
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Role{},
		&models.Blacklist{},
		&models.Guide{},
		&models.Zone{},
		&models.ZonePoint{},
		&models.Road{},
		&models.RoadPoint{},
		&models.Alert{},
		&models.AlertConfirmation{},
		&models.AlertClosure{},
		&models.MissionQuiz{},
		&models.MissionAction{},
		&models.MissionPaparazzi{},
		&models.MissionCampaign{},
		&models.MissionActionCompletion{},
		&models.MissionPaparazziCompletion{},
		&models.Equivalent{},
		&models.EquivalentRequest{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	if err := SeedCampaigns(db); err != nil {
		return fmt.Errorf("seeding campaigns error: %v", err)
	}

	if err := SeedDefaultAdmin(db); err != nil {
		return fmt.Errorf("seeding admin error: %v", err)
	}

	return nil
}
