package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/server/response"
	"github.com/techagentng/cityalert/services/jwt"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user := models.User{
			Fullname:  c.PostForm("fullname"),
			Email:     c.PostForm("email"),
			Telephone: c.PostForm("telephone"),
			Password:  c.PostForm("password"),
		}
		if err := models.ValidateWhiteSpaces(&user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if user.Fullname == "" || user.Email == "" || user.Telephone == "" || user.Password == "" {
			response.JSON(c, "fullname, email, telephone and password are required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		// profile image is optional
		if _, fileHeader, err := c.Request.FormFile("profile_image"); err == nil {
			thumbURL, err := s.MediaService.UploadFileToS3(fileHeader, "profiles")
			if err != nil {
				log.Printf("signup profile image upload error: %v", err)
				response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
				return
			}
			user.ThumbNailURL = thumbURL
		} else if err != http.ErrMissingFile {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		createdUser, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		if s.Mail != nil {
			if _, err := s.Mail.SendWelcomeMessage(createdUser.Email, createdUser.Fullname); err != nil {
				log.Printf("welcome mail to %s failed: %v", createdUser.Email, err)
			}
		}

		response.JSON(c, "signup successful", http.StatusCreated, models.UserResponse{
			ID:           createdUser.ID,
			Fullname:     createdUser.Fullname,
			Email:        createdUser.Email,
			Telephone:    createdUser.Telephone,
			ThumbNailURL: createdUser.ThumbNailURL,
		}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleAdminLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.AdminLoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		loginResponse, err := s.AuthService.AdminLogin(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "access token not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		accessToken, ok := token.(string)
		if !ok {
			respondAndAbort(c, "access token is not a string", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.AuthRepository.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
			log.Printf("error adding access token to blacklist: %v", err)
			respondAndAbort(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		user, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, models.UserResponse{
			ID:           user.ID,
			Fullname:     user.Fullname,
			Email:        user.Email,
			Telephone:    user.Telephone,
			ThumbNailURL: user.ThumbNailURL,
		}, nil)
	}
}

func (s *Server) handleUpdateProfileImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")

		_, fileHeader, err := c.Request.FormFile("profile_image")
		if err != nil {
			response.JSON(c, "profile_image is required", http.StatusBadRequest, nil, err)
			return
		}

		thumbURL, err := s.MediaService.UploadFileToS3(fileHeader, "profiles")
		if err != nil {
			log.Printf("profile image upload error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.AuthService.UpdateUserImage(userID, thumbURL); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile image updated", http.StatusOK, gin.H{"thumbnail_url": thumbURL}, nil)
	}
}

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthService.GetAllUsers()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		responses := make([]models.UserResponse, 0, len(users))
		for _, u := range users {
			responses = append(responses, models.UserResponse{
				ID:           u.ID,
				Fullname:     u.Fullname,
				Email:        u.Email,
				Telephone:    u.Telephone,
				ThumbNailURL: u.ThumbNailURL,
			})
		}
		response.JSON(c, "", http.StatusOK, responses, nil)
	}
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var forgot models.ForgotPassword
		if err := decode(c, &forgot); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthRepository.FindUserByEmail(forgot.Email)
		if err != nil || user == nil {
			// do not reveal which accounts exist
			response.JSON(c, "if the account exists, a reset link has been sent", http.StatusOK, nil, nil)
			return
		}

		resetToken, err := jwt.GeneratePasswordResetToken(user.Email, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate reset token", http.StatusInternalServerError, nil, err)
			return
		}

		baseURL := s.Config.BaseUrl
		if baseURL == "" {
			baseURL = os.Getenv("BASE_URL")
		}
		resetLink := baseURL + "/reset-password/" + resetToken

		if s.Mail != nil {
			if _, err := s.Mail.SendResetPassword(user.Email, resetLink); err != nil {
				response.JSON(c, "connection to mail service interrupted", http.StatusInternalServerError, nil, err)
				return
			}
		}
		response.JSON(c, "if the account exists, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var resetRequest models.ResetPassword
		if err := decode(c, &resetRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if resetRequest.Password != resetRequest.ConfirmPassword {
			response.JSON(c, "passwords do not match", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		token := c.Param("token")
		email, err := jwt.VerifyPasswordResetToken(token, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "invalid or expired reset token", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		if apiErr := s.AuthService.UpdatePassword(email, resetRequest.Password); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}
