package handler

import (
	"bizinsights/internal/model"
	"bizinsights/internal/repository"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	Upsert(ctx context.Context, in model.UserInput) (*model.User, error)
	GetByUID(ctx context.Context, uid string) (*model.User, error)
	UpdateProfile(ctx context.Context, uid, displayName string, patch model.NotificationsPatch) (*model.User, error)
	SavedNews(ctx context.Context, uid string) ([]model.News, error)
	LikedNews(ctx context.Context, uid string) ([]model.News, error)
}

type UserHandler struct {
	repository UserStore
}

func NewUserHandler(repository UserStore) *UserHandler {
	return &UserHandler{repository: repository}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	req.UID = strings.TrimSpace(req.UID)
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if req.UID == "" || req.Email == "" || req.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "uid, email and displayName are required"})
		return
	}

	user, err := h.repository.Upsert(c.Request.Context(), model.UserInput{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered to another user"})
		return
	}
	if err != nil {
		serverError(c, "Error creating/updating user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.repository.GetByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		serverError(c, "Error fetching user", err)
		return
	}

	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetSavedNews(c *gin.Context) {
	items, err := h.repository.SavedNews(c.Request.Context(), c.Param("uid"))
	h.respondNews(c, items, err, "Error fetching saved news")
}

func (h *UserHandler) GetLikedNews(c *gin.Context) {
	items, err := h.repository.LikedNews(c.Request.Context(), c.Param("uid"))
	h.respondNews(c, items, err, "Error fetching liked news")
}

func (h *UserHandler) respondNews(c *gin.Context, items []model.News, err error, errMessage string) {
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		serverError(c, errMessage, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	var patch model.NotificationsPatch
	if req.Notifications != nil {
		patch = *req.Notifications
	}

	user, err := h.repository.UpdateProfile(c.Request.Context(), c.Param("uid"), strings.TrimSpace(req.DisplayName), patch)
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		serverError(c, "Error updating user profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
