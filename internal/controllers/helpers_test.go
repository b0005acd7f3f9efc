package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"farmlink/internal/config"
	"farmlink/internal/controllers"
	"farmlink/internal/geo"
	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/routes"
	"farmlink/internal/store"
)

type env struct {
	db     *gorm.DB
	store  *store.Store
	auth   *middleware.Auth
	router *gin.Engine
}

// newEnv wires the full router against a per-test in-memory sqlite database,
// through the same migration the server runs.
func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	st := store.New(db)
	st.Interests.AllowDuplicates = true
	auth := middleware.NewAuth("test-secret")
	hub := controllers.NewTrackingHub()
	t.Cleanup(hub.Close)

	router := routes.SetupRouter(routes.Handlers{
		Auth:       &controllers.AuthController{Store: st, Auth: auth},
		Farmer:     &controllers.FarmerController{Store: st},
		User:       &controllers.UserController{Store: st},
		Order:      &controllers.OrderController{Store: st, Hub: hub},
		Interest:   &controllers.InterestController{Store: st},
		Tracking:   &controllers.TrackingController{Store: st, Hub: hub},
		Live:       &controllers.LiveController{Hub: hub, Auth: auth},
		Middleware: auth,
	})

	return &env{db: db, store: st, auth: auth, router: router}
}

func (e *env) createUser(t *testing.T, name, role string, lng, lat float64, communityID *uint) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:        name,
		Email:       name + "@example.com",
		Password:    string(hash),
		Role:        role,
		PhoneNumber: "0700000000",
		Location:    geo.Point{Lng: lng, Lat: lat},
		CommunityID: communityID,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *env) createCommunity(t *testing.T, name string, ownerID uint) models.Community {
	t.Helper()
	community := models.Community{Name: name, OwnerUserID: ownerID}
	require.NoError(t, e.db.Create(&community).Error)
	return community
}

func (e *env) createProduce(t *testing.T, name string, farmerID uint, quantity int) models.Produce {
	t.Helper()
	produce := models.Produce{Name: name, Quantity: quantity, Price: 2.5, Unit: "kg", FarmerID: farmerID}
	require.NoError(t, e.db.Create(&produce).Error)
	return produce
}

func (e *env) token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := e.auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func geoJSON(lng, lat float64) map[string]any {
	return map[string]any{"type": "Point", "coordinates": []float64{lng, lat}}
}
