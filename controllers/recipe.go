package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/models"
	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

const defaultPageSize = 10

type createRecipeInput struct {
	Title        string   `json:"title" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions string   `json:"instructions" binding:"required"`
	Category     string   `json:"category" binding:"required"`
}

// updateRecipeInput uses pointers so omitted fields stay untouched.
type updateRecipeInput struct {
	Title        *string  `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions *string  `json:"instructions"`
	Category     *string  `json:"category"`
}

// recipeDetail is the fixed preload chain for list and detail reads.
func (ctl *Controller) recipeDetail() *gorm.DB {
	return ctl.DB.
		Preload("CreatedBy").
		Preload("Reviews.User")
}

// ListRecipes returns recipes newest-first with optional category filter,
// title/ingredient search and skip/limit pagination.
func (ctl *Controller) ListRecipes(c *gin.Context) {
	query := ctl.recipeDetail()

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if term := strings.TrimSpace(c.Query("searchTerm")); term != "" {
		pattern := "%" + term + "%"
		query = query.Where("title LIKE ? OR ingredients LIKE ?", pattern, pattern)
	}

	skip, _ := strconv.Atoi(c.Query("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}

	var recipes []models.Recipe
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		ctl.Log.WithError(err).Error("recipes: list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe with owner and reviews expanded.
func (ctl *Controller) GetRecipe(c *gin.Context) {
	var recipe models.Recipe
	err := ctl.recipeDetail().First(&recipe, parseID(c.Param("id"))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		ctl.Log.WithError(err).Error("recipes: fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe persists a recipe owned by the caller and announces it on
// the recipe-added topic.
func (ctl *Controller) CreateRecipe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input createRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	recipe := models.Recipe{
		Title:        input.Title,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		Category:     input.Category,
		CreatedByID:  user.ID,
	}
	if err := ctl.DB.Create(&recipe).Error; err != nil {
		ctl.Log.WithError(err).Error("recipes: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var populated models.Recipe
	if err := ctl.recipeDetail().First(&populated, recipe.ID).Error; err != nil {
		ctl.Log.WithError(err).Error("recipes: reload after create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	ctl.Bus.Publish(pubsub.TopicRecipeAdded, populated)
	c.JSON(http.StatusCreated, populated)
}

// UpdateRecipe applies the provided fields; owner or admin only.
func (ctl *Controller) UpdateRecipe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var recipe models.Recipe
	if err := ctl.DB.First(&recipe, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if recipe.CreatedByID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var input updateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Ingredients != nil {
		updates["ingredients"] = models.StringList(input.Ingredients)
	}
	if input.Instructions != nil {
		updates["instructions"] = *input.Instructions
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&recipe).Updates(updates).Error; err != nil {
			ctl.Log.WithError(err).Error("recipes: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
	}

	var populated models.Recipe
	if err := ctl.recipeDetail().First(&populated, recipe.ID).Error; err != nil {
		ctl.Log.WithError(err).Error("recipes: reload after update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, populated)
}

// DeleteRecipe removes the recipe together with its reviews and saved
// references; owner or admin only.
func (ctl *Controller) DeleteRecipe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var recipe models.Recipe
	if err := ctl.DB.First(&recipe, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if recipe.CreatedByID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM saved_recipes WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		ctl.Log.WithError(err).Error("recipes: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// SaveRecipe adds the recipe to the caller's saved list. Idempotent.
func (ctl *Controller) SaveRecipe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var recipe models.Recipe
	if err := ctl.DB.First(&recipe, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := ctl.DB.Model(user).Association("SavedRecipes").Append(&recipe); err != nil {
		ctl.Log.WithError(err).Error("recipes: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	profile, err := ctl.loadProfile(user.ID)
	if err != nil {
		ctl.Log.WithError(err).Error("recipes: profile reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UnsaveRecipe removes the recipe from the caller's saved list.
func (ctl *Controller) UnsaveRecipe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var recipe models.Recipe
	if err := ctl.DB.First(&recipe, parseID(c.Param("id"))).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := ctl.DB.Model(user).Association("SavedRecipes").Delete(&recipe); err != nil {
		ctl.Log.WithError(err).Error("recipes: unsave failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	profile, err := ctl.loadProfile(user.ID)
	if err != nil {
		ctl.Log.WithError(err).Error("recipes: profile reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
