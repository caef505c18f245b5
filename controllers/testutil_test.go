package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/config"
	"github.com/VaibhavLohitashv/recipe-share/middlewares"
	"github.com/VaibhavLohitashv/recipe-share/models"
	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Controller, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	cfg := &config.Config{JWTSecret: testSecret, TokenTTL: 24 * time.Hour}
	ctl := New(db, pubsub.NewBus(), cfg, log)

	r := gin.New()
	r.Use(middlewares.CurrentUser(db, cfg.JWTSecret))
	ctl.Routes(r)
	return ctl, r
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// doJSON performs a request against the router and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// signupUser registers a user through the API and returns its token and id.
func signupUser(t *testing.T, r *gin.Engine, username, email string) (string, uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/signup", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// promoteToAdmin flips a user's role directly in the database.
func promoteToAdmin(t *testing.T, ctl *Controller, userID uint) {
	t.Helper()
	err := ctl.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("role", models.RoleAdmin).Error
	require.NoError(t, err)
}

// createRecipe makes a recipe through the API and returns its id.
func createRecipe(t *testing.T, r *gin.Engine, token, title, category string, ingredients ...string) uint {
	t.Helper()
	if len(ingredients) == 0 {
		ingredients = []string{"salt"}
	}
	w := doJSON(t, r, http.MethodPost, "/recipes", token, gin.H{
		"title":        title,
		"ingredients":  ingredients,
		"instructions": "mix and cook",
		"category":     category,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	require.NotZero(t, recipe.ID)
	return recipe.ID
}

func fetchRecipe(t *testing.T, r *gin.Engine, id uint) models.Recipe {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/recipes/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	return recipe
}
