package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/VaibhavLohitashv/recipe-share/config"
	"github.com/VaibhavLohitashv/recipe-share/controllers"
	"github.com/VaibhavLohitashv/recipe-share/middlewares"
	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database setup failed")
	}

	bus := pubsub.NewBus()
	ctl := controllers.New(db, bus, cfg, log)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Token resolution never rejects; handlers enforce authentication.
	r.Use(middlewares.CurrentUser(db, cfg.JWTSecret))

	ctl.Routes(r)

	log.WithField("port", cfg.Port).Info("server started")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
