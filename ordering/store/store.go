// Package store composes cart, pricing, lifecycle and session transitions into
// one dispatcher. Collaborators change state only by dispatching intents and
// observe it only through immutable snapshots.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	mu          sync.Mutex
	state       *State
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	strict      bool
	reduce      func(*State, Intent) (*State, error)
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(*State)
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets how order and menu item ids are minted when an intent
// leaves them empty.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithStrictInvariants makes Dispatch panic on an invariant violation instead
// of logging it and rejecting the intent. Malformed collaborator data never
// reaches this check; the reducer rejects it first.
func WithStrictInvariants() Option {
	return func(s *Store) {
		s.strict = true
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state:  &State{},
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
		reduce: reduce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the latest snapshot.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies in and returns the resulting snapshot. It never fails: a
// rejected intent yields a snapshot with unchanged domain state and a
// Rejection. Subscribers are called before Dispatch returns and must not
// dispatch or subscribe from the callback.
func (s *Store) Dispatch(in Intent) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	in = s.prepare(in)

	next, err := s.reduce(prev, in)
	if err == nil {
		if err = Validate(next); err != nil {
			if s.strict {
				panic(err)
			}
			s.logger.Error("rejecting transition that breaks state invariants",
				zap.String("intent", Name(in)),
				zap.Uint64("version", prev.version),
				zap.Error(err))
		}
	}

	if err != nil {
		rejection := rejectionFor(in, err)
		s.logger.Debug("intent rejected",
			zap.String("intent", rejection.Intent),
			zap.String("code", string(rejection.Code)),
			zap.Error(err))
		next = prev.clone()
		next.rejection = &rejection
	} else {
		next.rejection = nil
	}

	next.version = prev.version + 1
	s.state = next
	for _, sub := range s.subscribers {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn to receive every new snapshot in dispatch order. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(*State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// prepare fills ids and timestamps the caller left empty.
func (s *Store) prepare(in Intent) Intent {
	switch in := in.(type) {
	case PlaceOrder:
		if in.OrderID == "" {
			in.OrderID = s.newID()
		}
		if in.PlacedAt.IsZero() {
			in.PlacedAt = s.now().UTC()
		}
		return in
	case AddMenuItem:
		if in.Item.ID == "" {
			in.Item.ID = s.newID()
		}
		return in
	default:
		return in
	}
}
