package controllers

import (
	"context"
	"io"
	"net/http"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/internal/policy"
	"EduPortal/internal/service/users"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type UserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]models.UserProfile, int, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, caller policy.Caller, id uuid.UUID, in users.UpdateInput) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, caller policy.Caller, id uuid.UUID) error
	UploadAvatar(ctx context.Context, caller policy.Caller, id uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.UserProfile, error)
}

type UsersHandler struct {
	users    UserService
	pageSize int
	log      logger.Log
}

func NewUsersHandler(l logger.Log, userService UserService, pageSize int) *UsersHandler {
	return &UsersHandler{users: userService, pageSize: pageSize, log: l}
}

func (h *UsersHandler) List(c *gin.Context) {
	limit, offset, page := pageParams(c, h.pageSize)
	profiles, total, err := h.users.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, total, page, h.pageSize, profiles))
}

func (h *UsersHandler) Retrieve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	profile, err := h.users.UserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UsersHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	profile, err := h.users.UserByID(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var input updateUserRequest
	if verr := bindJSON(c, &input); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	profile, err := h.users.UpdateUser(c.Request.Context(), callerFrom(c), id, users.UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Bio:       input.Bio,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), callerFrom(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UsersHandler) UploadAvatar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, h.log, app_errors.NewValidationError("avatar", "This field is required."))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"avatar": []string{"File too large."}}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	profile, err := h.users.UploadAvatar(
		c.Request.Context(), callerFrom(c), id,
		fileHeader.Filename, file, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
