package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmlink/internal/models"
	"farmlink/internal/store"
)

func TestCreateInterest(t *testing.T) {
	e := newEnv(t)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)
	produce := e.createProduce(t, "tomatoes", farmer.ID, 50)
	user := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodPost, "/interest", e.token(t, user), map[string]any{
		"productId": produce.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Interest models.Interest `json:"interest"`
	}
	decode(t, w, &resp)
	assert.Equal(t, user.ID, resp.Interest.UserID)
	assert.Equal(t, produce.ID, resp.Interest.ProductID)

	// Interests never touch stock.
	unchanged, err := e.store.Produce.FindByID(produce.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, unchanged.Quantity)
}

func TestCreateInterestRequiresUserRole(t *testing.T) {
	e := newEnv(t)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)

	w := e.do(t, http.MethodPost, "/interest", e.token(t, farmer), map[string]any{
		"productId": 1, "quantity": 3,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	e.db.Model(&models.Interest{}).Count(&count)
	assert.Zero(t, count, "rejected create must not write an interest")
}

func TestDuplicateInterestsAllowedByDefault(t *testing.T) {
	e := newEnv(t)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)
	produce := e.createProduce(t, "tomatoes", farmer.ID, 50)
	user := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)
	token := e.token(t, user)
	body := map[string]any{"productId": produce.ID, "quantity": 3}

	w := e.do(t, http.MethodPost, "/interest", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.do(t, http.MethodPost, "/interest", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	e.db.Model(&models.Interest{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDuplicateInterestsRejectedWhenConfigured(t *testing.T) {
	e := newEnv(t)
	e.store.Interests.AllowDuplicates = false
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)
	produce := e.createProduce(t, "tomatoes", farmer.ID, 50)
	user := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)
	token := e.token(t, user)
	body := map[string]any{"productId": produce.ID, "quantity": 3}

	w := e.do(t, http.MethodPost, "/interest", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.do(t, http.MethodPost, "/interest", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMyInterests(t *testing.T) {
	e := newEnv(t)
	farmer := e.createUser(t, "frank", models.RoleFarmer, 0, 0, nil)
	produce := e.createProduce(t, "tomatoes", farmer.ID, 50)
	bob := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)
	carol := e.createUser(t, "carol", models.RoleUser, 0, 0, nil)
	require.NoError(t, e.db.Create(&models.Interest{UserID: bob.ID, ProductID: produce.ID, Quantity: 1}).Error)
	require.NoError(t, e.db.Create(&models.Interest{UserID: carol.ID, ProductID: produce.ID, Quantity: 2}).Error)

	w := e.do(t, http.MethodGet, "/interest/mine", e.token(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Interests []store.InterestDetail `json:"interests"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Interests, 1)
	assert.Equal(t, bob.ID, resp.Interests[0].UserID)
}

func TestAllInterestsAdminOnly(t *testing.T) {
	e := newEnv(t)
	user := e.createUser(t, "bob", models.RoleUser, 0, 0, nil)

	w := e.do(t, http.MethodGet, "/interest", e.token(t, user), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
