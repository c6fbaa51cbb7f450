package store

import (
	"testing"

	"overcooked-storefront/ordering/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// brokenReduce produces a snapshot that no reducer path may ever publish.
func brokenReduce(prev *State, _ Intent) (*State, error) {
	next := prev.clone()
	next.orders = []domain.Order{
		{ID: "o1", Status: domain.StatusPending},
		{ID: "o1", Status: domain.StatusReady},
	}
	return next, nil
}

func TestDispatchInvariantViolation(t *testing.T) {
	t.Run("strict mode panics", func(t *testing.T) {
		st := New(WithStrictInvariants())
		st.reduce = brokenReduce

		assert.PanicsWithError(t, `state invariant violated: duplicate order "o1"`, func() {
			st.Dispatch(SetLoading{Loading: true})
		})
	})

	t.Run("lenient mode logs and rejects", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		st := New(WithLogger(zap.New(core)))
		before := st.Dispatch(SetLoading{Loading: true})
		st.reduce = brokenReduce

		after := st.Dispatch(SetError{Message: "boom"})

		rejection, rejected := after.Rejection()
		require.True(t, rejected)
		assert.Equal(t, CodeInvariantViolation, rejection.Code)
		assert.Equal(t, "set_error", rejection.Intent)
		assert.Equal(t, before.Version()+1, after.Version())
		assert.Empty(t, after.Orders())
		assert.Empty(t, after.Error())
		assert.True(t, after.Loading())

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "set_error", logs.All()[0].ContextMap()["intent"])
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		state *State
		valid bool
	}{
		{name: "empty state", state: &State{}, valid: true},
		{name: "session without user", state: &State{session: &domain.Session{Role: domain.RoleCustomer}}},
		{name: "current restaurant not cached", state: &State{currentRestaurantID: "r9"}},
		{name: "order with unknown status", state: &State{orders: []domain.Order{{ID: "o1", Status: "shipped"}}}},
		{name: "repeated restaurant", state: &State{restaurants: []domain.Restaurant{{ID: "r1"}, {ID: "r1"}}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := Validate(testCase.state)

			if testCase.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvariant)
			}
		})
	}
}
