package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VaibhavLohitashv/recipe-share/models"
	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

type reviewInput struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// CreateReview adds a review to a recipe, refreshes the recipe's average
// rating and announces the review on the recipe's topic.
func (ctl *Controller) CreateReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to submit a review"})
		return
	}

	var recipe models.Recipe
	if err := ctl.DB.First(&recipe, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !ctl.Cfg.AllowDuplicateReviews {
		var count int64
		if err := ctl.DB.Model(&models.Review{}).
			Where("recipe_id = ? AND user_id = ?", recipe.ID, user.ID).
			Count(&count).Error; err != nil {
			ctl.Log.WithError(err).Error("reviews: duplicate check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this recipe"})
			return
		}
	}

	review := models.Review{
		Content:  input.Content,
		Rating:   input.Rating,
		RecipeID: recipe.ID,
		UserID:   user.ID,
	}
	if err := ctl.DB.Create(&review).Error; err != nil {
		ctl.Log.WithError(err).Error("reviews: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := ctl.refreshAverageRating(recipe.ID); err != nil {
		ctl.Log.WithError(err).Error("reviews: rating refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var populated models.Review
	if err := ctl.DB.Preload("User").First(&populated, review.ID).Error; err != nil {
		ctl.Log.WithError(err).Error("reviews: reload after create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	ctl.Bus.Publish(pubsub.TopicReviewAdded(recipe.ID), populated)
	c.JSON(http.StatusCreated, populated)
}

// UpdateReview edits a review's content and rating; author only.
func (ctl *Controller) UpdateReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var review models.Review
	if err := ctl.DB.First(&review, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := map[string]interface{}{
		"content": input.Content,
		"rating":  input.Rating,
	}
	if err := ctl.DB.Model(&review).Updates(updates).Error; err != nil {
		ctl.Log.WithError(err).Error("reviews: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := ctl.refreshAverageRating(review.RecipeID); err != nil {
		ctl.Log.WithError(err).Error("reviews: rating refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var populated models.Review
	if err := ctl.DB.Preload("User").First(&populated, review.ID).Error; err != nil {
		ctl.Log.WithError(err).Error("reviews: reload after update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, populated)
}

// DeleteReview removes a review and refreshes the recipe's average rating;
// author only.
func (ctl *Controller) DeleteReview(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var review models.Review
	if err := ctl.DB.First(&review, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := ctl.DB.Delete(&review).Error; err != nil {
		ctl.Log.WithError(err).Error("reviews: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := ctl.refreshAverageRating(review.RecipeID); err != nil {
		ctl.Log.WithError(err).Error("reviews: rating refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
