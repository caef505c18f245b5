package controllers

import "github.com/gin-gonic/gin"

// Routes registers every endpoint. Authentication is enforced inside the
// handlers, so all routes share the same middleware chain.
func (ctl *Controller) Routes(r *gin.Engine) {
	r.POST("/signup", ctl.Signup)
	r.POST("/login", ctl.Login)
	r.GET("/me", ctl.Me)
	r.GET("/users/:id", ctl.GetUser)

	r.GET("/recipes", ctl.ListRecipes)
	r.GET("/recipes/:id", ctl.GetRecipe)
	r.POST("/recipes", ctl.CreateRecipe)
	r.PUT("/recipes/:id", ctl.UpdateRecipe)
	r.DELETE("/recipes/:id", ctl.DeleteRecipe)
	r.POST("/recipes/:id/save", ctl.SaveRecipe)
	r.DELETE("/recipes/:id/save", ctl.UnsaveRecipe)

	r.POST("/recipes/:id/reviews", ctl.CreateReview)
	r.PUT("/reviews/:id", ctl.UpdateReview)
	r.DELETE("/reviews/:id", ctl.DeleteReview)

	r.GET("/ws", ctl.HandleWebSocket)
}
