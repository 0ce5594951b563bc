package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a citizen account on the mobile app
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Telephone      string    `json:"telephone" gorm:"unique;not null" binding:"required" conform:"trim"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	ThumbNailURL   string    `json:"thumbnail_url,omitempty"`
	IsBlocked      bool      `json:"is_blocked" gorm:"default:false"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

// AdminUser is a console operator; kept in a separate table from citizen accounts
type AdminUser struct {
	Model
	Username       string `json:"username" gorm:"unique;not null" binding:"required,min=5"`
	HashedPassword string `json:"-"`
}

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Blacklist holds access tokens invalidated by logout
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"type:varchar(512);index"`
}

type SignupRequest struct {
	Fullname  string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email     string `json:"email" binding:"required,email" conform:"email"`
	Telephone string `json:"telephone" binding:"required" conform:"trim"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest authenticates by email or telephone, matching the mobile client
type LoginRequest struct {
	EmailOrTelephone string `json:"email_or_telephone" binding:"required" conform:"trim"`
	Password         string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" conform:"trim"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	ThumbNailURL string `json:"thumbnail_url,omitempty"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ValidateWhiteSpaces trims request fields in place per their conform tags
func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf(e.Translate(trans)+"; "))
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (a *AdminUser) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.HashedPassword), []byte(password))
}
