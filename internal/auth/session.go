package auth

import (
	"context"
	"strconv"
	"strings"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
)

// LoginAPI is the slice of the API client the session needs.
type LoginAPI interface {
	Login(ctx context.Context, phone string, otp int64) (string, error)
}

// Session ties the login endpoint to the token store and answers the
// single question every route gate asks: is there a token right now?
type Session struct {
	store  TokenStore
	api    LoginAPI
	logger logger.Logger
}

func NewSession(store TokenStore, api LoginAPI, log logger.Logger) *Session {
	return &Session{
		store:  store,
		api:    api,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Login exchanges credentials for a token and persists it. The OTP is
// typed as text but sent as a number; a non-numeric OTP fails before
// any call is made. On a rejected login nothing is persisted and the
// server's message is surfaced verbatim.
func (s *Session) Login(ctx context.Context, phone, otp string) error {
	otp = strings.TrimSpace(otp)
	if phone == "" || otp == "" {
		return apperrors.NewValidationError("phone and OTP are required")
	}
	otpNum, err := strconv.ParseInt(otp, 10, 64)
	if err != nil {
		return apperrors.NewValidationError("OTP must be numeric")
	}

	token, err := s.api.Login(ctx, phone, otpNum)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, token, phone); err != nil {
		return err
	}

	s.logger.Info("login succeeded", map[string]interface{}{"phone": phone})
	return nil
}

// Logout clears the persisted token. Safe to call when already logged out.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// IsAuthenticated reports whether a token is currently persisted. Store
// read errors count as unauthenticated rather than crashing a view.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Token(ctx)
	if err != nil {
		s.logger.Warn("token read failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return token != ""
}

// LastPhone returns the display-only phone of the last login.
func (s *Session) LastPhone(ctx context.Context) string {
	phone, err := s.store.LastPhone(ctx)
	if err != nil {
		return ""
	}
	return phone
}

// Subscribe runs fn with the fresh authentication state after every
// token-store change signal.
func (s *Session) Subscribe(fn func(authenticated bool)) {
	s.store.Subscribe(func() {
		fn(s.IsAuthenticated(context.Background()))
	})
}
