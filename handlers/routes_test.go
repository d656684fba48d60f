package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"ghazaltech-backend/services"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	referralService := services.NewReferralService(nil)
	notificationService := services.NewNotificationService(nil)
	SetupContentRoutes(app, services.NewContentService(nil))
	SetupAuthRoutes(app, services.NewAuthService(nil, referralService))
	SetupDashboardRoutes(app,
		services.NewOrderService(nil, referralService),
		services.NewProjectService(nil, notificationService),
		services.NewPaymentService(nil, notificationService),
		services.NewQuoteService(nil, notificationService),
		referralService,
	)
	return app
}

// The session guard is scoped to the dashboard prefixes; paths outside them
// must fall through to a plain 404, not a 401.
func TestUnknownPathsReturnNotFound(t *testing.T) {
	app := newTestApp()
	for _, path := range []string{"/no-such-path", "/totally/unknown"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("GET %s: status = %d, want %d", path, resp.StatusCode, fiber.StatusNotFound)
		}
	}
}

func TestSecuredRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp()
	for _, route := range []struct{ method, path string }{
		{"GET", "/orders"},
		{"GET", "/projects"},
		{"GET", "/referrals/summary"},
		{"GET", "/auth/me"},
		{"GET", "/admin/orders"},
	} {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", route.method, route.path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want %d", route.method, route.path, resp.StatusCode, fiber.StatusUnauthorized)
		}
	}
}

// Public auth endpoints stay reachable without a session.
func TestPublicAuthRoutesSkipSessionGuard(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(httptest.NewRequest("POST", "/auth/login", nil))
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	// no body at all parses as a bad request, never a missing-session 401
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("POST /auth/login: status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
