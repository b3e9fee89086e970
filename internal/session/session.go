// Package session implements the login/signup/logout flows. This is a
// placeholder convenience stub, not real authentication: any address
// containing "@" with a six-character password is accepted and no credential
// store exists. It must never be treated as a security boundary.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
	"github.com/atsdairy/dashboard/internal/validation"
)

// ErrInvalid indicates the submitted form failed validation; the session and
// the stored state are unchanged.
var ErrInvalid = errors.New("form failed validation")

const minPasswordLen = 6

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptedTerms   bool   `json:"acceptedTerms"`
}

// Service holds the current session and persists it through the shim. A
// successful login writes the current_user key plus the one-shot user_login
// broadcast key that other live instances adopt and clear.
type Service struct {
	mu       sync.RWMutex
	kv       kvstore.Store
	logger   *zap.Logger
	current  *models.SessionUser
	onLogout []func()
}

// NewService builds the session service and rehydrates any persisted session.
func NewService(ctx context.Context, kv kvstore.Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{kv: kv, logger: logger}

	var user models.SessionUser
	found, err := kv.Load(ctx, kvstore.KeyCurrentUser, &user)
	if err != nil {
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}
	if found {
		s.current = &user
		logger.Info("session rehydrated", zap.String("email", user.Email))
	}
	return s, nil
}

// OnLogout registers a cleanup hook run when the session ends. Hooks clear
// session-scoped state such as notifications and board messages.
func (s *Service) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Current returns the logged-in user, if any.
func (s *Service) Current() (models.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.SessionUser{}, false
	}
	return *s.current, true
}

// Login validates the credentials shape and, on success, establishes and
// persists the session. A failed login leaves storage untouched.
func (s *Service) Login(ctx context.Context, email, password string) (models.SessionUser, validation.Errors, error) {
	errs := validation.Errors{
		"email":    validation.LooseEmail("Email", email),
		"password": validation.MinLen("Password", password, minPasswordLen),
	}
	if !errs.OK() {
		return models.SessionUser{}, errs, ErrInvalid
	}

	user := models.SessionUser{Email: email, Password: password}
	if err := s.establish(ctx, user); err != nil {
		return models.SessionUser{}, nil, err
	}
	return user, errs, nil
}

// Signup validates the registration form and then behaves exactly like
// Login. Nothing is registered anywhere; the stub only shapes the session.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (models.SessionUser, validation.Errors, error) {
	errs := validation.Errors{
		"firstName": validation.Required("First name", req.FirstName),
		"lastName":  validation.Required("Last name", req.LastName),
		"email":     validation.LooseEmail("Email", req.Email),
		"password":  validation.MinLen("Password", req.Password, minPasswordLen),
	}
	if req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if !req.AcceptedTerms {
		errs["terms"] = "You must accept the terms to continue"
	}
	if !errs.OK() {
		return models.SessionUser{}, errs, ErrInvalid
	}

	user := models.SessionUser{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.establish(ctx, user); err != nil {
		return models.SessionUser{}, nil, err
	}
	return user, errs, nil
}

// ForgotPassword checks the email shape. With no credential store behind the
// stub there is nothing to reset; the flow always reports success.
func (s *Service) ForgotPassword(email string) (validation.Errors, error) {
	errs := validation.Errors{
		"email": validation.LooseEmail("Email", email),
	}
	if !errs.OK() {
		return errs, ErrInvalid
	}
	return errs, nil
}

// Logout clears the session, the persisted user and any session-scoped state
// registered through OnLogout.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	hooks := make([]func(), len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, kvstore.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	for _, fn := range hooks {
		fn()
	}
	s.logger.Info("session cleared")
	return nil
}

// AdoptBroadcast implements the one-shot cross-instance notification: when
// another instance logged in and left the user_login key behind, adopt that
// session and clear the key. Reports whether a broadcast was consumed.
func (s *Service) AdoptBroadcast(ctx context.Context) (bool, error) {
	var user models.SessionUser
	found, err := s.kv.Load(ctx, kvstore.KeyLoginBroadcast, &user)
	if err != nil {
		return false, fmt.Errorf("read login broadcast: %w", err)
	}
	if !found {
		return false, nil
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, kvstore.KeyLoginBroadcast); err != nil {
		return false, fmt.Errorf("clear login broadcast: %w", err)
	}
	s.logger.Info("adopted broadcast session", zap.String("email", user.Email))
	return true, nil
}

func (s *Service) establish(ctx context.Context, user models.SessionUser) error {
	if err := s.kv.Save(ctx, kvstore.KeyCurrentUser, user); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.kv.Save(ctx, kvstore.KeyLoginBroadcast, user); err != nil {
		return fmt.Errorf("write login broadcast: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	s.logger.Info("session established", zap.String("email", user.Email))
	return nil
}
