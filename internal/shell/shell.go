// Package shell owns the chrome state around the screens: sidebar and
// profile-modal flags, the current route, and auth-based route gating.
package shell

import (
	"context"
	"sync"

	"marketplace-admin/internal/auth"
	"marketplace-admin/internal/common/logger"
)

// Route names match the screens the console exposes.
const (
	RouteLogin              = "login"
	RouteDashboard          = "dashboard"
	RouteBusinessManagement = "business-management"
	RoutePendingApprovals   = "pending-approvals"
	RouteSubscriptions      = "subscriptions"
	RouteUserManagement     = "user-management"
	RoutePromotions         = "promotions"
	RouteOffers             = "offers"
)

// Shell gates routes on authentication and holds the global UI flags.
// It subscribes to the session, so a logout observed from another
// process bounces the console back to the login route.
type Shell struct {
	mu               sync.Mutex
	sidebarOpen      bool
	profileModalOpen bool
	route            string

	session *auth.Session
	logger  logger.Logger
}

func New(session *auth.Session, log logger.Logger) *Shell {
	s := &Shell{
		route:   RouteLogin,
		session: session,
		logger:  log.WithFields(map[string]interface{}{"component": "shell"}),
	}

	session.Subscribe(func(authenticated bool) {
		if !authenticated {
			s.mu.Lock()
			s.route = RouteLogin
			s.profileModalOpen = false
			s.mu.Unlock()
		}
	})

	return s
}

// Gate reports whether the route is reachable right now. Only the login
// route is open to unauthenticated sessions.
func (s *Shell) Gate(ctx context.Context, route string) bool {
	if route == RouteLogin {
		return true
	}
	return s.session.IsAuthenticated(ctx)
}

// Navigate moves to route when the gate admits it.
func (s *Shell) Navigate(ctx context.Context, route string) bool {
	if !s.Gate(ctx, route) {
		return false
	}
	s.mu.Lock()
	s.route = route
	s.mu.Unlock()
	return true
}

// Route returns the current route.
func (s *Shell) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

func (s *Shell) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	s.mu.Unlock()
}

func (s *Shell) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

func (s *Shell) SetProfileModal(open bool) {
	s.mu.Lock()
	s.profileModalOpen = open
	s.mu.Unlock()
}

func (s *Shell) ProfileModalOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileModalOpen
}
