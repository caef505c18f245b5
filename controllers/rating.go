package controllers

import (
	"database/sql"
	"math"
	"sync"

	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/models"
)

// refreshAverageRating recomputes a recipe's average rating from all of its
// reviews and persists it, rounded to one decimal place (0 with no
// reviews). The per-recipe lock plus the transaction keep concurrent review
// writes on the same recipe from publishing a stale average.
func (ctl *Controller) refreshAverageRating(recipeID uint) error {
	mu := ctl.recipeLock(recipeID)
	mu.Lock()
	defer mu.Unlock()

	return ctl.DB.Transaction(func(tx *gorm.DB) error {
		var avg sql.NullFloat64
		err := tx.Model(&models.Review{}).
			Where("recipe_id = ?", recipeID).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return err
		}

		rounded := 0.0
		if avg.Valid {
			rounded = math.Round(avg.Float64*10) / 10
		}

		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			Update("average_rating", rounded).Error
	})
}

func (ctl *Controller) recipeLock(recipeID uint) *sync.Mutex {
	ctl.ratingMu.Lock()
	defer ctl.ratingMu.Unlock()
	mu, ok := ctl.ratingLocks[recipeID]
	if !ok {
		mu = &sync.Mutex{}
		ctl.ratingLocks[recipeID] = mu
	}
	return mu
}
