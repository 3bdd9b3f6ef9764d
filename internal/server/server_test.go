package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/config"
)

// TestErrorHandlerEnvelope verifies unmatched routes surface through the
// shared JSON error envelope rather than Fiber's default plain text.
func TestErrorHandlerEnvelope(t *testing.T) {
	srv := New(&config.Config{BaseURL: "http://localhost:8080"})

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/no-such-route", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("envelope status = %q, want error", body.Status)
	}
	if body.Error == "" {
		t.Error("envelope error message is empty")
	}
}
