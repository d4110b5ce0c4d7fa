package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/metrics"
)

// SessionState is the lifecycle state of the client's authentication.
type SessionState string

const (
	StateLoading         SessionState = "loading"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// SessionSnapshot is an immutable view of the session state. Session is
// non-nil exactly when State is StateAuthenticated.
type SessionSnapshot struct {
	State   SessionState
	Session *domain.Session
}

// SessionService owns the process-wide authentication state. Transitions:
//
//	loading → authenticated | unauthenticated
//	authenticated ⇄ unauthenticated
//
// Only this type mutates the state; everyone else reads a snapshot or
// subscribes.
type SessionService struct {
	auth ports.AuthGateway
	log  zerolog.Logger

	mu        sync.Mutex
	state     SessionState
	session   *domain.Session
	epoch     uint64
	listeners map[int]func(SessionSnapshot)
	nextID    int
}

// NewSessionService returns a service in the loading state. Call Init to
// resolve it.
func NewSessionService(auth ports.AuthGateway, log zerolog.Logger) *SessionService {
	metrics.SessionTransitionsTotal.WithLabelValues(string(StateLoading)).Inc()
	return &SessionService{
		auth:      auth,
		log:       log,
		state:     StateLoading,
		listeners: make(map[int]func(SessionSnapshot)),
	}
}

// Init probes the backend for an existing session. Any failure resolves
// to unauthenticated; the service never stays in loading. If a login or
// an expiry already moved the state on, the probe result is discarded.
func (s *SessionService) Init(ctx context.Context) SessionSnapshot {
	user, err := s.auth.CheckAuth(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session probe failed, continuing as guest")
	}

	if err != nil || user == nil {
		snap, _ := s.apply(StateUnauthenticated, nil, s.stillLoading)
		return snap
	}
	snap, _ := s.apply(StateAuthenticated, domain.NewSession(*user), s.stillLoading)
	return snap
}

// Login authenticates through the gateway. On failure the state is left as
// it was and the error is returned for display.
func (s *SessionService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	user, err := s.auth.Login(ctx, identifier, secret)
	if err != nil {
		s.log.Info().Err(err).Msg("login failed")
		return nil, err
	}
	if user == nil {
		return nil, domain.NewServerError(0, "login returned no user.")
	}
	snap := s.transition(StateAuthenticated, domain.NewSession(*user))
	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("signed in")
	return snap.Session, nil
}

// Logout ends the server session and then always drops the local one, even
// when the server call fails.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	s.transition(StateUnauthenticated, nil)
	s.log.Info().Msg("signed out")
}

// Expire drops the local session after the backend answered 401 to a
// request made with it.
func (s *SessionService) Expire() {
	s.expire(func() bool { return true })
}

// ExpireEpoch is Expire for a request sent under epoch. A 401 for a
// request sent before the latest sign-in or sign-out is stale and ignored.
func (s *SessionService) ExpireEpoch(epoch uint64) {
	s.expire(func() bool { return s.epoch == epoch })
}

// Epoch identifies the current session. It changes on every transition.
func (s *SessionService) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *SessionService) expire(current func() bool) {
	_, applied := s.apply(StateUnauthenticated, nil, func() bool {
		return s.state != StateUnauthenticated && current()
	})
	if applied {
		s.log.Warn().Msg("session expired on the server")
	}
}

// Snapshot returns the current state.
func (s *SessionService) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CurrentUser returns the signed-in user, or nil for a guest.
func (s *SessionService) CurrentUser() *domain.User {
	snap := s.Snapshot()
	if snap.Session == nil {
		return nil
	}
	u := snap.Session.User
	return &u
}

// Subscribe registers fn to receive every new snapshot. fn is called
// outside the service's lock. The returned func unsubscribes.
func (s *SessionService) Subscribe(fn func(SessionSnapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionService) transition(state SessionState, session *domain.Session) SessionSnapshot {
	snap, _ := s.apply(state, session, nil)
	return snap
}

func (s *SessionService) stillLoading() bool { return s.state == StateLoading }

// apply moves to state and notifies listeners. guard runs under the lock;
// when it reports false the state is left untouched and returned as is.
func (s *SessionService) apply(state SessionState, session *domain.Session, guard func() bool) (SessionSnapshot, bool) {
	s.mu.Lock()
	if guard != nil && !guard() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false
	}
	s.state = state
	s.session = session
	s.epoch++
	snap := s.snapshotLocked()
	listeners := make([]func(SessionSnapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(state)).Inc()
	for _, fn := range listeners {
		fn(snap)
	}
	return snap, true
}

func (s *SessionService) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{State: s.state}
	if s.session != nil {
		cp := *s.session
		snap.Session = &cp
	}
	return snap
}
