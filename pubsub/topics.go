package pubsub

import "fmt"

// TopicRecipeAdded is the global feed of newly created recipes.
const TopicRecipeAdded = "RECIPE_ADDED"

// TopicReviewAdded scopes new-review events to a single recipe.
func TopicReviewAdded(recipeID uint) string {
	return fmt.Sprintf("REVIEW_ADDED.%d", recipeID)
}
