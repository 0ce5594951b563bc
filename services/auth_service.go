package services

import (
	"errors"
	"log"

	"github.com/techagentng/cityalert/config"
	"github.com/techagentng/cityalert/db"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	AdminLogin(loginRequest *models.AdminLoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdatePassword(email, newPassword string) *apiError.Error
	UpdateUserImage(userID uint, imageURL string) error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Email == "" {
		return nil, errors.New("email is empty")
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	if err := s.authRepo.IsPhoneExist(user.Telephone); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), 400)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	createdUser, err := s.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return createdUser, nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmailOrTelephone(loginRequest.EmailOrTelephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid credentials", 401)
		}
		return nil, apiError.ErrInternalServerError
	}

	if foundUser.IsBlocked {
		return nil, apiError.New("account is blocked", 403)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid credentials", 401)
	}

	roleName := models.RoleUser
	if foundUser.Role.Name != "" {
		roleName = foundUser.Role.Name
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, s.Config.JWTSecret, false, foundUser.ID, roleName)
	if err != nil {
		log.Printf("LoginUser token error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:           foundUser.ID,
			Fullname:     foundUser.Fullname,
			Email:        foundUser.Email,
			Telephone:    foundUser.Telephone,
			ThumbNailURL: foundUser.ThumbNailURL,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) AdminLogin(loginRequest *models.AdminLoginRequest) (*models.LoginResponse, *apiError.Error) {
	admin, err := s.authRepo.FindAdminByUsername(loginRequest.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid credentials", 401)
		}
		return nil, apiError.ErrInternalServerError
	}

	if err := admin.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid credentials", 401)
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(admin.Username, s.Config.JWTSecret, true, admin.ID, models.RoleAdmin)
	if err != nil {
		log.Printf("AdminLogin token error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       admin.ID,
			Fullname: admin.Username,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", 404)
		}
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) GetAllUsers() ([]models.User, error) {
	users, err := s.authRepo.GetAllUsers()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	return users, nil
}

func (s *authService) UpdatePassword(email, newPassword string) *apiError.Error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return apiError.New(err.Error(), 400)
	}
	hashed, err := GenerateHashPassword(newPassword)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.UpdatePassword(hashed, email); err != nil {
		log.Printf("UpdatePassword error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) UpdateUserImage(userID uint, imageURL string) error {
	if err := s.authRepo.UpsertUserImage(userID, imageURL); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}
