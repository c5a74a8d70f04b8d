package server

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
)

func TestDeriveEncryptionKey(t *testing.T) {
	key := deriveEncryptionKey("some-session-secret")
	if key == "" {
		t.Fatal("expected non-empty key")
	}
	if key != deriveEncryptionKey("some-session-secret") {
		t.Error("key derivation must be deterministic")
	}
	if key == deriveEncryptionKey("another-secret") {
		t.Error("different secrets must derive different keys")
	}
}

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack does not panic when a client replays encrypted
// session cookies across multiple requests.  This was broken in Fiber
// v3.0.0-rc.3 (index-out-of-range in encryptcookie decryption).
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	encryptionKey := deriveEncryptionKey("test-secret-that-is-long-enough-for-production")

	app := fiber.New()

	// Same middleware order as production: encryptcookie, then session.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user_sub", "oidc|alice")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("user_sub").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request 1 failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, body)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	// Replaying the cookies exercises encryptcookie decryption.
	req2, _ := http.NewRequest("GET", "/session-get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("request 2 failed (possible encryptcookie panic): %v", err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 {
		t.Fatalf("request 2: expected 200, got %d: %s", resp2.StatusCode, body)
	}
	if string(body) != "oidc|alice" {
		t.Errorf("session value lost across requests: got %q", body)
	}
}
