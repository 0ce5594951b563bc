package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/cityalert/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	IsPhoneExist(telephone string) error
	FindUserByID(id uint) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByEmailOrTelephone(emailOrTelephone string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(password string, email string) error
	UpsertUserImage(userID uint, filepath string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	FindRoleByName(name string) (*models.Role, error)
	FindAdminByUsername(username string) (*models.AdminUser, error)
	CreateAdmin(admin *models.AdminUser) error
	GetAllUsers() ([]models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	if user.RoleID == uuid.Nil {
		var defaultRole models.Role
		if err := a.DB.Where("name = ?", models.RoleUser).First(&defaultRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				defaultRole = models.Role{ID: uuid.New(), Name: models.RoleUser}
				if err := a.DB.Create(&defaultRole).Error; err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		user.RoleID = defaultRole.ID
	}

	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsPhoneExist(telephone string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("telephone = ?", telephone).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("telephone already in use")
	}
	return nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := a.DB.Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmailOrTelephone backs the mobile login, which accepts either
func (a *authRepo) FindUserByEmailOrTelephone(emailOrTelephone string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ? OR telephone = ?", emailOrTelephone, emailOrTelephone).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).
		Update("hashed_password", password).Error
}

func (a *authRepo) UpsertUserImage(userID uint, filepath string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("thumb_nail_url", filepath).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("IsTokenInBlacklist error: %v", err)
		return false
	}
	return count > 0
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) FindAdminByUsername(username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := a.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *authRepo) CreateAdmin(admin *models.AdminUser) error {
	return a.DB.Create(admin).Error
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
