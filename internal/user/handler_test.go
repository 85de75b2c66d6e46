package user

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestSignUpAndSignIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := NewInMemoryRepository(nil)
	app := makeAppWithUserHandler(NewHandler(NewService(repo)))

	// register
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"ana@example.com","password":"hunter22","displayName":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "hunter22") || strings.Contains(string(b), "$2") {
		t.Fatalf("password leaked in sign-up response: %s", string(b))
	}

	// duplicate registration conflicts
	req2 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"ana@example.com","password":"hunter22","displayName":"Ana"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	// login issues a token
	req3 := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"hunter22"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for sign-in, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"token"`) {
		t.Fatalf("response missing token: %s", string(b3))
	}

	// wrong password is rejected
	req4 := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res4.StatusCode)
	}
}

func TestSignUpValidation(t *testing.T) {
	app := makeAppWithUserHandler(NewHandler(NewService(NewInMemoryRepository(nil))))

	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"","password":"","displayName":""}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", res.StatusCode)
	}
}

func TestProfile(t *testing.T) {
	repo := NewInMemoryRepository([]User{
		{ID: 42, Email: "ana@example.com", Password: "hashed", DisplayName: "Ana"},
	})
	app := makeAppWithUserHandler(NewHandler(NewService(repo)))

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	body := string(b)
	if !strings.Contains(body, "ana@example.com") {
		t.Fatalf("unexpected profile body: %s", body)
	}
	if strings.Contains(body, "hashed") {
		t.Fatalf("password hash leaked: %s", body)
	}

	// unknown user id
	req3 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req3.Header.Set("X-User-ID", "999")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", res3.StatusCode)
	}
}
