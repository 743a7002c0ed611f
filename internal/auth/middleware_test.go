package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func protectedApp(secret string, roles ...Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{JWTMiddleware(secret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	app.Get("/protected", append(handlers, func(c *fiber.Ctx) error {
		role, _ := RoleFromCtx(c)
		return c.JSON(fiber.Map{"user_id": UserIDFromCtx(c), "role": role})
	})...)
	return app
}

func TestJWTMiddlewareAllowsValidToken(t *testing.T) {
	svc := NewService("secret", nil)
	token, err := svc.signToken("user-1", RoleCoach, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d (%v)", resp.StatusCode, err)
	}
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	svc := NewService("other-secret", nil)
	token, err := svc.signToken("user-1", RoleCoach, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	svc := NewService("secret", nil)

	coachToken, err := svc.signToken("user-1", RoleCoach, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	runnerToken, err := svc.signToken("user-2", RoleRunner, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := protectedApp("secret", RoleAdmin, RoleCoach)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+coachToken)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("coach should pass, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+runnerToken)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("runner should be forbidden, got %d", resp.StatusCode)
	}
}

func TestRequireRoleWithoutJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", RequireRole(RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}
