// Package service holds the collaborators that fetch and send data for the
// state store and report the results back as intents.
package service

import (
	"context"
	"errors"
	"fmt"

	"overcooked-storefront/ordering/store"

	"go.uber.org/zap"
)

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
)

// RejectedError reports that the store refused the intent a call dispatched.
type RejectedError struct {
	Rejection store.Rejection
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected (%s): %s", e.Rejection.Intent, e.Rejection.Code, e.Rejection.Reason)
}

func outcome(s *store.State) (*store.State, error) {
	if rejection, rejected := s.Rejection(); rejected {
		return s, &RejectedError{Rejection: rejection}
	}
	return s, nil
}

// withLoading raises the loading flag around fn and always lowers it again.
// A failure is reported as SetError unless ctx was cancelled.
func withLoading(ctx context.Context, d Dispatcher, logger *zap.Logger, op string, fn func() error) error {
	d.Dispatch(store.SetLoading{Loading: true})
	defer d.Dispatch(store.SetLoading{Loading: false})

	if d.State().Error() != "" {
		d.Dispatch(store.SetError{})
	}

	err := fn()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		logger.Debug("operation cancelled", zap.String("op", op), zap.Error(err))
		return ctx.Err()
	}
	logger.Warn("operation failed", zap.String("op", op), zap.Error(err))
	d.Dispatch(store.SetError{Message: err.Error()})
	return err
}
