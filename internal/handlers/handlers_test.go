package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mehulj/noteshare/internal/auth"
	"github.com/mehulj/noteshare/internal/service"
	"github.com/mehulj/noteshare/internal/storage/sqlite"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type env struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "noteshare-http-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("handler-test-secret", time.Hour)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger)
	noteSvc := service.NewNoteService(store, logger)

	return &testAPI{
		t:      t,
		router: NewRouter(authSvc, noteSvc, jwtManager, 100000),
	}
}

func (a *testAPI) do(method, path, token string, body any) (int, env) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out env
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		a.t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, out
}

// signup registers a user and returns a login token for them.
func (a *testAPI) signup(name, email, password string) string {
	a.t.Helper()

	if code, resp := a.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": password,
	}); code != http.StatusOK {
		a.t.Fatalf("signup %s: status %d (%s)", email, code, resp.Message)
	}

	code, resp := a.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	if code != http.StatusOK {
		a.t.Fatalf("login %s: status %d (%s)", email, code, resp.Message)
	}
	token, _ := resp.Data["token"].(string)
	if token == "" {
		a.t.Fatalf("login %s: no token in response", email)
	}
	return token
}

func (a *testAPI) createNote(token, content string) string {
	a.t.Helper()
	code, resp := a.do(http.MethodPost, "/api/notes", token, gin.H{"content": content})
	if code != http.StatusOK {
		a.t.Fatalf("create note: status %d (%s)", code, resp.Message)
	}
	note, _ := resp.Data["note"].(map[string]any)
	id, _ := note["id"].(string)
	if id == "" {
		a.t.Fatal("create note: no id in response")
	}
	return id
}

func TestSignupEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("registers a new user", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{
			"name": "newuser", "email": "newuser@example.com", "password": "newpassword",
		})
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if resp.Message != "User created successfully" {
			t.Errorf("message = %q", resp.Message)
		}
		user, _ := resp.Data["user"].(map[string]any)
		if user["id"] == "" || user["id"] == nil {
			t.Error("expected user id in response")
		}
		if _, leaked := user["password"]; leaked {
			t.Error("password leaked in response")
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		body := gin.H{"name": "dup", "email": "dup@example.com", "password": "duppassword"}
		if code, _ := api.do(http.MethodPost, "/api/auth/signup", "", body); code != http.StatusOK {
			t.Fatalf("first signup: status = %d", code)
		}
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", body)
		if code != http.StatusConflict {
			t.Errorf("status = %d, want 409", code)
		}
		if resp.Message != "user already exists" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("rejects missing details", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/signup", "", gin.H{})
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if resp.Message != "missing details" {
			t.Errorf("message = %q", resp.Message)
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.signup("alice", "alice@example.com", "alicepassword")

	t.Run("valid credentials", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "alicepassword",
		})
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if token, _ := resp.Data["token"].(string); token == "" {
			t.Error("expected token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		code, _ := api.do(http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "wrong password",
		})
		if code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", code)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		code, _ := api.do(http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "ghost@example.com", "password": "whatever1",
		})
		if code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", code)
		}
	})
}

func TestNotesRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes/some-id"},
		{http.MethodPut, "/api/notes/some-id"},
		{http.MethodDelete, "/api/notes/some-id"},
		{http.MethodPost, "/api/notes/some-id/share"},
		{http.MethodGet, "/api/search?q=x"},
	}
	for _, p := range paths {
		if code, _ := api.do(p.method, p.path, "", nil); code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, code)
		}
	}

	if code, _ := api.do(http.MethodGet, "/api/notes", "garbage-token", nil); code != http.StatusUnauthorized {
		t.Error("garbage token accepted")
	}
}

func TestNotesEndpoints(t *testing.T) {
	api := newTestAPI(t)
	aliceToken := api.signup("alice", "alice@example.com", "alicepassword")
	bobToken := api.signup("bob", "bob@example.com", "bobpassword1")

	t.Run("create", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes", aliceToken, gin.H{"content": "New test note content"})
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if resp.Message != "Note created successfully" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("create without content", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes", aliceToken, gin.H{})
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if resp.Message != "missing note content" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("list has user and shared sequences", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/notes", aliceToken, nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if _, ok := resp.Data["userNotes"]; !ok {
			t.Error("missing userNotes")
		}
		if _, ok := resp.Data["sharedNotes"]; !ok {
			t.Error("missing sharedNotes")
		}
	})

	t.Run("get by id", func(t *testing.T) {
		id := api.createNote(aliceToken, "specific note")

		code, resp := api.do(http.MethodGet, "/api/notes/"+id, aliceToken, nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		note, _ := resp.Data["note"].(map[string]any)
		if note["content"] != "specific note" {
			t.Errorf("content = %v", note["content"])
		}
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/notes/"+uuid.New().String(), aliceToken, nil)
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
		if resp.Message != "note not found" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("get someone else's note is 403", func(t *testing.T) {
		id := api.createNote(bobToken, "bob's private note")
		code, resp := api.do(http.MethodGet, "/api/notes/"+id, aliceToken, nil)
		if code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", code)
		}
		if resp.Message != "unauthorized" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("update", func(t *testing.T) {
		id := api.createNote(aliceToken, "before update")

		code, resp := api.do(http.MethodPut, "/api/notes/"+id, aliceToken, gin.H{"content": "after update"})
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		note, _ := resp.Data["note"].(map[string]any)
		if note["content"] != "after update" {
			t.Errorf("content = %v", note["content"])
		}

		if code, _ := api.do(http.MethodPut, "/api/notes/"+uuid.New().String(), aliceToken, gin.H{"content": "x"}); code != http.StatusNotFound {
			t.Errorf("unknown id: status = %d, want 404", code)
		}
		if code, _ := api.do(http.MethodPut, "/api/notes/"+id, bobToken, gin.H{"content": "x"}); code != http.StatusForbidden {
			t.Errorf("non-owner: status = %d, want 403", code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		id := api.createNote(aliceToken, "to delete")

		if code, _ := api.do(http.MethodDelete, "/api/notes/"+id, bobToken, nil); code != http.StatusForbidden {
			t.Errorf("non-owner: status = %d, want 403", code)
		}

		code, resp := api.do(http.MethodDelete, "/api/notes/"+id, aliceToken, nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		note, _ := resp.Data["note"].(map[string]any)
		if note["id"] != id {
			t.Errorf("deleted note id = %v, want %s", note["id"], id)
		}

		if code, _ := api.do(http.MethodDelete, "/api/notes/"+id, aliceToken, nil); code != http.StatusNotFound {
			t.Errorf("re-delete: status = %d, want 404", code)
		}
	})
}

func TestShareEndpoint(t *testing.T) {
	api := newTestAPI(t)
	aliceToken := api.signup("alice", "alice@example.com", "alicepassword")
	bobToken := api.signup("bob", "bob@example.com", "bobpassword1")
	noteID := api.createNote(aliceToken, "shareable note")

	t.Run("shares with another user", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", aliceToken, gin.H{
			"sharedUserEmail": "bob@example.com",
		})
		if code != http.StatusOK {
			t.Fatalf("status = %d (%s), want 200", code, resp.Message)
		}
		if resp.Message != "Note shared successfully" {
			t.Errorf("message = %q", resp.Message)
		}
		note, _ := resp.Data["note"].(map[string]any)
		shared, _ := note["shared"].([]any)
		if len(shared) != 1 {
			t.Errorf("shared = %v, want one entry", shared)
		}
	})

	t.Run("unknown note", func(t *testing.T) {
		code, _ := api.do(http.MethodPost, "/api/notes/"+uuid.New().String()+"/share", aliceToken, gin.H{
			"sharedUserEmail": "bob@example.com",
		})
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
	})

	t.Run("non-owner cannot share", func(t *testing.T) {
		code, _ := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", bobToken, gin.H{
			"sharedUserEmail": "bob@example.com",
		})
		if code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", code)
		}
	})

	t.Run("unknown target email", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", aliceToken, gin.H{
			"sharedUserEmail": "ghost@example.com",
		})
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
		if resp.Message != "user with the provided email not found" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("duplicate share conflicts", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", aliceToken, gin.H{
			"sharedUserEmail": "bob@example.com",
		})
		if code != http.StatusConflict {
			t.Errorf("status = %d, want 409", code)
		}
		if resp.Message != "note is already shared with this user" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		code, resp := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", aliceToken, gin.H{})
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if resp.Message != "missing sharedUserEmail in the request body" {
			t.Errorf("message = %q", resp.Message)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("alice", "alice@example.com", "alicepassword")
	api.createNote(token, "Searchable test note content")

	t.Run("finds matching notes", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/search?q=Searchable", token, nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if resp.Message != "Search results retrieved successfully" {
			t.Errorf("message = %q", resp.Message)
		}
		results, _ := resp.Data["searchResult"].([]any)
		if len(results) == 0 {
			t.Error("expected at least one search result")
		}
	})

	t.Run("missing query parameter", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/search", token, nil)
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if resp.Message != "missing search query parameter" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("no matches is an empty success", func(t *testing.T) {
		code, resp := api.do(http.MethodGet, "/api/search?q=xylophone", token, nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		results, ok := resp.Data["searchResult"].([]any)
		if !ok {
			t.Fatalf("searchResult missing or not a list: %v", resp.Data["searchResult"])
		}
		if len(results) != 0 {
			t.Errorf("expected empty result, got %v", results)
		}
	})
}

// TestEndToEnd mirrors the full story: A creates "hello world", shares it
// with B; B can read but not write; A deletes; both see 404.
func TestEndToEnd(t *testing.T) {
	api := newTestAPI(t)
	aliceToken := api.signup("alice", "alice@example.com", "alicepassword")
	bobToken := api.signup("bob", "bob@example.com", "bobpassword1")

	noteID := api.createNote(aliceToken, "hello world")

	code, resp := api.do(http.MethodGet, "/api/notes/"+noteID, aliceToken, nil)
	if code != http.StatusOK {
		t.Fatalf("owner get: status = %d", code)
	}
	note, _ := resp.Data["note"].(map[string]any)
	if note["content"] != "hello world" {
		t.Fatalf("content = %v", note["content"])
	}

	if code, _ := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", aliceToken, gin.H{
		"sharedUserEmail": "bob@example.com",
	}); code != http.StatusOK {
		t.Fatalf("share: status = %d", code)
	}

	if code, _ := api.do(http.MethodGet, "/api/notes/"+noteID, bobToken, nil); code != http.StatusOK {
		t.Errorf("shared get: status = %d, want 200", code)
	}
	if code, _ := api.do(http.MethodPut, "/api/notes/"+noteID, bobToken, gin.H{"content": "nope"}); code != http.StatusForbidden {
		t.Errorf("shared update: status = %d, want 403", code)
	}
	if code, _ := api.do(http.MethodDelete, "/api/notes/"+noteID, bobToken, nil); code != http.StatusForbidden {
		t.Errorf("shared delete: status = %d, want 403", code)
	}
	if code, _ := api.do(http.MethodPost, "/api/notes/"+noteID+"/share", bobToken, gin.H{
		"sharedUserEmail": "alice@example.com",
	}); code != http.StatusForbidden {
		t.Errorf("shared share: status = %d, want 403", code)
	}

	if code, _ := api.do(http.MethodDelete, "/api/notes/"+noteID, aliceToken, nil); code != http.StatusOK {
		t.Fatalf("owner delete: status = %d", code)
	}
	if code, _ := api.do(http.MethodGet, "/api/notes/"+noteID, aliceToken, nil); code != http.StatusNotFound {
		t.Errorf("get after delete by owner: status = %d, want 404", code)
	}
	if code, _ := api.do(http.MethodGet, "/api/notes/"+noteID, bobToken, nil); code != http.StatusNotFound {
		t.Errorf("get after delete by shared user: status = %d, want 404", code)
	}
}
