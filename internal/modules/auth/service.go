package auth

import (
	"context"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/user"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrLoginRequired is returned when a session has no logged-in user.
var ErrLoginRequired = errors.New("login required")

// Clearer drops per-session state when the session logs out.
type Clearer interface {
	Clear(ctx context.Context, sid string) error
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Register creates an account and logs the session in.
	Register(ctx context.Context, sid, name, email, password string) (*user.User, error)
	Login(ctx context.Context, sid, email, password string) (*user.User, error)
	// Logout reports whether the session was logged in. Only then is the
	// per-session state of the registered Clearers dropped.
	Logout(ctx context.Context, sid string) (bool, error)
	CurrentUser(ctx context.Context, sid string) (*user.User, error)
	IsLoggedIn(ctx context.Context, sid string) bool
}

type service struct {
	users    user.Service
	sessions *storage.Collection[*user.User]
	clearers []Clearer
	log      log.FieldLogger
}

// NewService creates a new auth service. The session user lives under "user:<sid>".
func NewService(users user.Service, store storage.Store, logger log.FieldLogger, clearers ...Clearer) Service {
	return &service{
		users:    users,
		sessions: storage.NewCollection[*user.User](store, "user", logger),
		clearers: clearers,
		log:      logger.WithField("component", "auth.service"),
	}
}

func (s *service) Register(ctx context.Context, sid, name, email, password string) (*user.User, error) {
	u, err := s.users.RegisterUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.setUser(ctx, sid, u)
}

func (s *service) Login(ctx context.Context, sid, email, password string) (*user.User, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.setUser(ctx, sid, u)
}

func (s *service) setUser(ctx context.Context, sid string, u *user.User) (*user.User, error) {
	_, err := s.sessions.Update(ctx, sid, func(*user.User) (*user.User, error) { return u, nil })
	if err != nil {
		return nil, err
	}
	s.log.WithFields(log.Fields{"session": sid, "user": u.ID}).Info("session logged in")
	return u, nil
}

func (s *service) Logout(ctx context.Context, sid string) (bool, error) {
	u, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	s.sessions.Reset(ctx, sid)
	for _, c := range s.clearers {
		if err := c.Clear(ctx, sid); err != nil {
			s.log.WithError(err).WithField("session", sid).Warn("failed to clear session state")
		}
	}
	s.log.WithFields(log.Fields{"session": sid, "user": u.ID}).Info("session logged out")
	return true, nil
}

// CurrentUser re-reads the session's account from the users table, so a removed
// account no longer counts as logged in.
func (s *service) CurrentUser(ctx context.Context, sid string) (*user.User, error) {
	u, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrLoginRequired
	}
	fresh, err := s.users.GetUser(ctx, u.ID.String())
	if errors.Is(err, user.ErrNotFound) {
		s.log.WithFields(log.Fields{"session": sid, "user": u.ID}).Warn("session user no longer registered")
		return nil, ErrLoginRequired
	}
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *service) IsLoggedIn(ctx context.Context, sid string) bool {
	u, err := s.sessions.Get(ctx, sid)
	if err != nil {
		s.log.WithError(err).WithField("session", sid).Warn("failed to load session user")
		return false
	}
	return u != nil
}
