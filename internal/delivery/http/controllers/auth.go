package controllers

import (
	"context"
	"net/http"

	"EduPortal/internal/models"
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/serialize"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	UserByToken(ctx context.Context, key string) (*models.User, error)
}

type AuthHandler struct {
	AuthService AuthService
	serializer  *serialize.Serializer
	log         logger.Log
}

func NewAuthHandler(l logger.Log, authService AuthService, s *serialize.Serializer) *AuthHandler {
	return &AuthHandler{
		AuthService: authService,
		serializer:  s,
		log:         l,
	}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerRequest
	if verr := bindJSON(c, &input); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	user, token, err := h.AuthService.Register(c.Request.Context(), auth.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		Password2: input.Password2,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    h.serializer.UserProfile(c.Request.Context(), *user),
		"token":   token,
		"message": "registration success",
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if verr := bindJSON(c, &input); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	user, token, err := h.AuthService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    h.serializer.UserProfile(c.Request.Context(), *user),
		"token":   token,
		"message": "login success",
	})
}

// Logout deletes the caller's token. An anonymous or stale-token call
// gets the same generic 400 as a user whose token is already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to log out"})
		return
	}

	if err := h.AuthService.Logout(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}
