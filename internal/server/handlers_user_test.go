package server

import (
	"net/http"
	"testing"
)

// registerTestUser creates a user via the register handler.
func registerTestUser(t *testing.T, srv *Server, name, email, password string) {
	t.Helper()
	body := jsonBody(t, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	rec := do(t, srv, http.MethodPost, "/user/register", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("registerTestUser: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUserLogin_Success(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "alice", "alice@example.com", "secret")

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "alice",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode(t, rec)
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp["success"])
	}
	if resp["message"] != "Login successful" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	user := resp["user"].(map[string]interface{})
	if user["name"] != "alice" {
		t.Errorf("expected user name 'alice', got %v", user["name"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must not appear in login response")
	}
}

func TestHandleUserLogin_TrimsWhitespace(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "bob", "bob@example.com", "secret")

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "  bob  ",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUserLogin_EmptyUsername(t *testing.T) {
	srv := newTestServer(t)

	for _, username := range []string{"", "   "} {
		rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
			"username": username,
		}))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("username %q: expected 400, got %d", username, rec.Code)
		}
		resp := decode(t, rec)
		if resp["message"] != "Username is required" {
			t.Errorf("unexpected message: %v", resp["message"])
		}
	}
}

func TestHandleUserLogin_EmptyUsernameWhileStorageUnavailable(t *testing.T) {
	srv := newUnavailableStorageServer(t)

	// Input validation runs before the storage readiness check: a blank
	// username is a 400 even when the backend is down.
	for _, username := range []string{"", "   "} {
		rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
			"username": username,
		}))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("username %q: expected 400, got %d: %s", username, rec.Code, rec.Body.String())
			continue
		}
		resp := decode(t, rec)
		if resp["message"] != "Username is required" {
			t.Errorf("unexpected message: %v", resp["message"])
		}
	}
}

func TestHandleUserLogin_StorageUnavailable(t *testing.T) {
	srv := newUnavailableStorageServer(t)

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "alice",
	}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["error"] != "Service unavailable" {
		t.Errorf("unexpected error label: %v", resp["error"])
	}
}

func TestHandleUserLogin_UnknownUser(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "nobody",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["success"] != false {
		t.Errorf("expected success false, got %v", resp["success"])
	}
	if resp["message"] != "Username does not exist in the database" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestHandleUserLogin_SeededTestUser(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "test",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for seeded test user, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUserRegister(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/user/register", jsonBody(t, map[string]string{
		"name":     "carol",
		"email":    "carol@example.com",
		"password": "secret",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode(t, rec)
	if resp["message"] != "User created successfully" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	user := resp["user"].(map[string]interface{})
	if user["email"] != "carol@example.com" {
		t.Errorf("expected stored email, got %v", user["email"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must not appear in register response")
	}
}

func TestHandleUserRegister_MissingName(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/user/register", jsonBody(t, map[string]string{
		"email": "x@example.com",
	}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleUserGet(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "dave", "dave@example.com", "secret")

	rec := do(t, srv, http.MethodGet, "/user/dave", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	user := resp["user"].(map[string]interface{})
	if user["name"] != "dave" {
		t.Errorf("expected name 'dave', got %v", user["name"])
	}
}

func TestHandleUserGet_NotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/user/nobody", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["message"] != "Name does not exist" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestHandleUserCheckDatabase(t *testing.T) {
	srv := newTestServer(t)
	registerTestUser(t, srv, "erin", "erin@example.com", "secret")

	rec := do(t, srv, http.MethodGet, "/user/check/database", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode(t, rec)
	// Seeded test user plus erin.
	if resp["totalUsers"] != float64(2) {
		t.Errorf("expected totalUsers 2, got %v", resp["totalUsers"])
	}
	users := resp["users"].([]interface{})
	for _, raw := range users {
		u := raw.(map[string]interface{})
		if _, leaked := u["password"]; leaked {
			t.Error("password must not appear in database check")
		}
	}
}

func TestLoginRegisterRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	registerTestUser(t, srv, "frank", "frank@example.com", "secret")

	rec := do(t, srv, http.MethodPost, "/user/login", jsonBody(t, map[string]string{
		"username": "frank",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login after register: expected 200, got %d", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/user/frank", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get after login: expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	user := resp["user"].(map[string]interface{})
	if user["name"] != "frank" {
		t.Errorf("identity mismatch: %v", user["name"])
	}
}
