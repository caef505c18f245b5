package controllers

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/config"
	"github.com/VaibhavLohitashv/recipe-share/middlewares"
	"github.com/VaibhavLohitashv/recipe-share/models"
	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

// Controller carries the handler dependencies. One instance per server;
// tests build their own with an isolated database and bus.
type Controller struct {
	DB  *gorm.DB
	Bus *pubsub.Bus
	Cfg *config.Config
	Log *logrus.Logger

	// per-recipe locks serializing rating recomputation
	ratingMu    sync.Mutex
	ratingLocks map[uint]*sync.Mutex
}

func New(db *gorm.DB, bus *pubsub.Bus, cfg *config.Config, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		DB:          db,
		Bus:         bus,
		Cfg:         cfg,
		Log:         log,
		ratingLocks: make(map[uint]*sync.Mutex),
	}
}

// currentUser returns the user resolved by the auth middleware, or nil for
// an anonymous request.
func currentUser(c *gin.Context) *models.User {
	v, exists := c.Get(middlewares.ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// parseID converts a path parameter to a record id; 0 never matches a row.
func parseID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
