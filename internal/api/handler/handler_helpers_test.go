package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/core/store"
)

// memKV is a minimal in-memory persistence gateway for handler tests.
type memKV struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{slots: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	return data, ok
}

func (m *memKV) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), value...)
}

func (m *memKV) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
}

// testEnv bundles an echo instance with a live store over in-memory storage.
type testEnv struct {
	echo  *echo.Echo
	store *store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	s := store.New(newMemKV(), zerolog.Nop())
	s.Initialize(context.Background())

	return &testEnv{echo: e, store: s}
}

// request builds an echo context for a JSON request and a recorder to capture
// the response.
func (env *testEnv) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func (env *testEnv) loginDemo(t *testing.T) {
	t.Helper()
	result := env.store.Login(context.Background(), "demo@bowlapp.com", "demo123")
	if !result.Success {
		t.Fatalf("demo login failed: %s", result.Error)
	}
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Errorf("expected status %d, got %d", code, he.Code)
	}
}
