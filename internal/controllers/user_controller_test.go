package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmlink/internal/models"
	"farmlink/internal/store"
)

func TestNearbyFiltersByRadiusAndSorts(t *testing.T) {
	e := newEnv(t)
	// 0.01 deg of latitude is ~1.1 km, 0.05 is ~5.6 km, 0.2 is ~22 km.
	near := e.createUser(t, "near", models.RoleFarmer, 0, 0.01, nil)
	mid := e.createUser(t, "mid", models.RoleFarmer, 0, 0.05, nil)
	e.createUser(t, "far", models.RoleFarmer, 0, 0.2, nil)
	caller := e.createUser(t, "caller", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodGet, "/user/nearby?longitude=0&latitude=0&role=Farmer", e.token(t, caller), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Users []store.NearbyUser `json:"users"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, near.ID, resp.Users[0].ID)
	assert.Equal(t, mid.ID, resp.Users[1].ID)
	assert.InDelta(t, 1112, resp.Users[0].Distance, 15)
	assert.InDelta(t, 5560, resp.Users[1].Distance, 60)
}

func TestNearbyFiltersByRole(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "admin", models.RoleAdmin, 0, 0.01, nil)
	e.createUser(t, "member", models.RoleUser, 0, 0.01, nil)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0.02, nil)

	w := e.do(t, http.MethodGet, "/user/nearby?longitude=0&latitude=0&role=Farmer", e.token(t, farmer), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []store.NearbyUser `json:"users"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, models.RoleFarmer, resp.Users[0].Role)
}

func TestNearbyNoMatchesIsEmptyList(t *testing.T) {
	e := newEnv(t)
	caller := e.createUser(t, "caller", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodGet, "/user/nearby?longitude=100&latitude=50&role=Farmer", e.token(t, caller), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users":[]`)
}

func TestNearbyValidation(t *testing.T) {
	e := newEnv(t)
	caller := e.createUser(t, "caller", models.RoleUser, 0, 0, nil)
	token := e.token(t, caller)

	for _, path := range []string{
		"/user/nearby?latitude=0&role=Farmer",       // missing longitude
		"/user/nearby?longitude=0&role=Farmer",      // missing latitude
		"/user/nearby?longitude=0&latitude=0",       // missing role
		"/user/nearby?longitude=x&latitude=0&role=Farmer",
		"/user/nearby?longitude=0&latitude=0&role=Wizard",
	} {
		w := e.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestNearbyRequiresAuth(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/user/nearby?longitude=0&latitude=0&role=Farmer", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommunityInterestsScopedToOwnCommunity(t *testing.T) {
	e := newEnv(t)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)
	produce := e.createProduce(t, "tomatoes", farmer.ID, 50)

	admin1 := e.createUser(t, "admin1", models.RoleAdmin, 0, 0, nil)
	c1 := e.createCommunity(t, "greenfield", admin1.ID)
	admin2 := e.createUser(t, "admin2", models.RoleAdmin, 0, 0, nil)
	c2 := e.createCommunity(t, "riverside", admin2.ID)

	u1 := e.createUser(t, "u1", models.RoleUser, 0, 0, &c1.ID)
	u2 := e.createUser(t, "u2", models.RoleUser, 0, 0, &c1.ID)
	u3 := e.createUser(t, "u3", models.RoleUser, 0, 0, &c2.ID)

	for _, in := range []models.Interest{
		{UserID: u1.ID, ProductID: produce.ID, Quantity: 1},
		{UserID: u2.ID, ProductID: produce.ID, Quantity: 2},
		{UserID: u3.ID, ProductID: produce.ID, Quantity: 3},
		{UserID: u3.ID, ProductID: produce.ID, Quantity: 4},
	} {
		interest := in
		require.NoError(t, e.db.Create(&interest).Error)
	}

	w := e.do(t, http.MethodGet, "/user/admin/interests", e.token(t, admin1), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Interests []store.InterestDetail `json:"interests"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Interests, 2)
	for _, detail := range resp.Interests {
		assert.Contains(t, []uint{u1.ID, u2.ID}, detail.UserID)
		assert.NotEqual(t, u3.ID, detail.UserID)
		assert.Equal(t, "tomatoes", detail.ProduceName)
		assert.Equal(t, 2.5, detail.ProducePrice)
		assert.Equal(t, "kg", detail.ProduceUnit)
		assert.NotEmpty(t, detail.UserName)
		assert.NotEmpty(t, detail.UserPhoneNumber)
	}
}

func TestCommunityInterestsRequiresAdminRole(t *testing.T) {
	e := newEnv(t)
	member := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodGet, "/user/admin/interests", e.token(t, member), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommunityInterestsWithoutCommunityIs404(t *testing.T) {
	e := newEnv(t)
	// Admin without a community row: defensively a not-found, never an
	// empty list.
	admin := e.createUser(t, "admin", models.RoleAdmin, 0, 0, nil)

	w := e.do(t, http.MethodGet, "/user/admin/interests", e.token(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommunityInterestsEmptyCommunity(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, "admin", models.RoleAdmin, 0, 0, nil)
	e.createCommunity(t, "greenfield", admin.ID)

	w := e.do(t, http.MethodGet, "/user/admin/interests", e.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"interests":[]`)
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodPut, "/user/update", e.token(t, user), map[string]any{
		"phoneNumber": "0711111111",
		"location":    geoJSON(36.9, -1.3),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, err := e.store.Users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0711111111", updated.PhoneNumber)
	assert.InDelta(t, 36.9, updated.Location.Lng, 1e-9)
	assert.Equal(t, "bob", updated.Name) // untouched
}

func TestDeleteAdminRemovesCommunity(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, "admin", models.RoleAdmin, 0, 0, nil)
	e.createCommunity(t, "greenfield", admin.ID)

	w := e.do(t, http.MethodDelete, "/user/delete", e.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := e.store.Communities.FindByName("greenfield")
	assert.Error(t, err)
}
