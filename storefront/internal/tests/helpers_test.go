package tests

import (
	"testing"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testCatalog() []model.Restaurant {
	return []model.Restaurant{
		{
			ID:   "10",
			Name: "Spice Route",
			Menu: []model.MenuItem{
				{ID: "1", Name: "Paneer Tikka", Price: 120, IsVegetarian: true},
				{ID: "2", Name: "Butter Chicken", Price: 95},
			},
		},
		{
			ID:   "20",
			Name: "Pasta Bar",
			Menu: []model.MenuItem{
				{ID: "3", Name: "Arrabbiata", Price: 150, IsVegetarian: true},
			},
		},
	}
}

func newTestStore() *store.Store {
	return store.New(store.WithStrictInvariants(), store.WithLogger(zap.NewNop()))
}

func seededStore(t *testing.T, role model.Role) *store.Store {
	t.Helper()
	st := newTestStore()
	st.Dispatch(store.SetRestaurantCatalog{Restaurants: testCatalog()})

	userID := "7"
	if role == model.RoleRestaurant {
		userID = "10"
	}
	s := st.Dispatch(store.Login{Session: model.Session{
		UserID:      userID,
		DisplayName: "Asha",
		Role:        role,
		Attributes:  map[string]string{"address": "12 Baker St"},
	}})
	require.True(t, s.IsAuthenticated())
	return st
}

func signToken(t *testing.T, claims service.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func rejectionCode(t *testing.T, err error) store.RejectionCode {
	t.Helper()
	var rejected *service.RejectedError
	require.ErrorAs(t, err, &rejected)
	return rejected.Rejection.Code
}
