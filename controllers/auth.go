package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/auth"
	"github.com/VaibhavLohitashv/recipe-share/models"
)

type signupInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new user and logs them in.
func (ctl *Controller) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Duplicate username or email both count as a conflict.
	var count int64
	if err := ctl.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		ctl.Log.WithError(err).Error("signup: user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		ctl.Log.WithError(err).Error("signup: hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		// Unique index may still fire under concurrent signups.
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	token, err := auth.GenerateToken(&user, ctl.Cfg.JWTSecret, ctl.Cfg.TokenTTL)
	if err != nil {
		ctl.Log.WithError(err).Error("signup: token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same response.
func (ctl *Controller) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.User
	err := ctl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if err != nil || !auth.CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(&user, ctl.Cfg.JWTSecret, ctl.Cfg.TokenTTL)
	if err != nil {
		ctl.Log.WithError(err).Error("login: token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the caller's profile with owned and saved recipes expanded.
func (ctl *Controller) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := ctl.loadProfile(user.ID)
	if err != nil {
		ctl.Log.WithError(err).Error("me: profile load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUser returns a public profile by id.
func (ctl *Controller) GetUser(c *gin.Context) {
	profile, err := ctl.loadProfile(parseID(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.WithError(err).Error("user: profile load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *Controller) loadProfile(id uint) (*models.User, error) {
	var user models.User
	err := ctl.DB.
		Preload("Recipes.CreatedBy").
		Preload("SavedRecipes.CreatedBy").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
