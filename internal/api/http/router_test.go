package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/portfolio-api/internal/analytics"
	"github.com/devfolio/portfolio-api/internal/api/http/handlers"
	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/observability"
	"github.com/devfolio/portfolio-api/internal/repository"
	"github.com/devfolio/portfolio-api/internal/resume"
	"github.com/devfolio/portfolio-api/internal/service"
)

type testServer struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	users   repository.UserRepository
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	users := repository.NewMemoryUserRepository()
	products := repository.NewMemoryProductRepository(repository.DemoCatalog())
	cart := repository.NewMemoryCartRepository(products)
	contacts := repository.NewMemoryContactRepository()
	revoked := repository.NewMemoryRevocationStore()
	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager("router-test-secret", time.Hour)
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:        users,
		RevocationStore: revoked,
		Tokens:          tokens,
		Dispatcher:      dispatcher,
		BcryptCost:      bcrypt.MinCost,
	}, logger)
	contactService := service.NewContactService(contacts, dispatcher, logger)
	now := func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:          handlers.NewHealthHandler("portfolio-api", "test"),
		Auth:            handlers.NewAuthHandler(authService, handlers.CookieSettings{TTL: time.Hour}),
		Products:        handlers.NewProductsHandler(service.NewProductService(products)),
		Cart:            handlers.NewCartHandler(service.NewCartService(cart, products, dispatcher, logger)),
		Recommendations: handlers.NewRecommendationsHandler(service.NewRecommendationService(products, nil, logger)),
		Resume:          handlers.NewResumeHandler(resume.NewAnalyzer(nil)),
		Analytics:       handlers.NewAnalyticsHandler(analytics.NewGenerator(rand.NewPCG(1, 2), now)),
		Contact:         handlers.NewContactHandler(contactService),
		CppTools:        handlers.NewCppToolsHandler(),
		Tasks:           handlers.NewTasksHandler(service.NewTaskService(repository.NewMemoryTaskRepository(), dispatcher, logger)),
		Admin:           handlers.NewAdminHandler(contactService, metrics),
		Sessions:        auth.NewSessionMiddleware(tokens, revoked, "", logger),
	})

	return &testServer{app: app, tokens: tokens, users: users, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *nethttp.Request) (*nethttp.Response, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	} else if len(raw) > 0 {
		decoded["_raw"] = string(raw)
	}
	return resp, decoded
}

func (s *testServer) signUp(t *testing.T, email string) string {
	t.Helper()
	resp, body := s.do(t, nethttp.MethodPost, "/api/auth", "", map[string]string{
		"action": "signup", "name": "Tester", "email": email, "password": "pw-123456",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	admin := &domain.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	require.NoError(t, s.users.Create(context.Background(), admin))
	token, _, err := s.tokens.GenerateToken(admin)
	require.NoError(t, err)
	return token
}

func decodeArray(t *testing.T, body map[string]any) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal([]byte(body["_raw"].(string)), &out))
	return out
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])

	resp, body = s.do(t, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}

func TestRouter_AuthLifecycle(t *testing.T) {
	s := newTestServer(t)

	_, body := s.do(t, nethttp.MethodGet, "/api/auth", "", nil)
	assert.Nil(t, body["user"])

	req := httptest.NewRequest(nethttp.MethodPost, "/api/auth", strings.NewReader(`{"action":"signup","name":"Ada","email":"ada@example.com","password":"pw"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body := s.send(t, req)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	token := body["token"].(string)

	var cookie *nethttp.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "auth-token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req = httptest.NewRequest(nethttp.MethodGet, "/api/auth", nil)
	req.AddCookie(&nethttp.Cookie{Name: "auth-token", Value: token})
	_, body = s.send(t, req)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "USER", user["role"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/auth", "", map[string]string{"action": "signin", "email": "ada@example.com", "password": "wrong"})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	resp, _ = s.do(t, nethttp.MethodPost, "/api/auth", token, map[string]string{"action": "signout"})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	_, body = s.do(t, nethttp.MethodGet, "/api/auth", token, nil)
	assert.Nil(t, body["user"], "revoked token must not resolve a session")
}

func TestRouter_AuthInvalidAction(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/api/auth", "", map[string]string{"action": "reset"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action", body["error"])
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}

func TestRouter_Products(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/api/products?category=Furniture", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	items := decodeArray(t, body)
	require.Len(t, items, 1)
	assert.Equal(t, "5", items[0].(map[string]any)["id"])
}

func TestRouter_CartRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestRouter_CartFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "cart@example.com")

	resp, body := s.do(t, nethttp.MethodPost, "/api/cart", token, map[string]any{"productId": "3"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["quantity"])
	product := body["product"].(map[string]any)
	assert.Equal(t, "Minimalist Desk Lamp", product["name"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/cart", token, map[string]any{"productId": "3", "quantity": 2})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["quantity"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/cart", token, map[string]any{"productId": "5", "quantity": 500})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient stock", body["error"])

	resp, body = s.do(t, nethttp.MethodPut, "/api/cart", token, map[string]any{"productId": "3"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", body["error"])

	_, body = s.do(t, nethttp.MethodGet, "/api/cart", token, nil)
	assert.Len(t, decodeArray(t, body), 1)

	resp, body = s.do(t, nethttp.MethodPut, "/api/cart", token, map[string]any{"productId": "3", "quantity": 0})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item removed from cart", body["message"])

	_, body = s.do(t, nethttp.MethodGet, "/api/cart", token, nil)
	assert.Empty(t, decodeArray(t, body))

	resp, body = s.do(t, nethttp.MethodDelete, "/api/cart", token, nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product ID required", body["error"])
}

func TestRouter_RecommendationsFallBackToNewest(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/api/recommendations", "", map[string]any{"userPreferences": "audio gear"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	items := decodeArray(t, body)
	require.Len(t, items, 4)
	assert.Equal(t, "8", items[0].(map[string]any)["id"])
	for _, item := range items {
		assert.NotContains(t, item, "recommendationScore")
		assert.NotContains(t, item, "recommendationReason")
	}
}

func TestRouter_ResumeAnalyze(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/api/resume/analyze", "", map[string]string{"text": "   "})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please provide a resume file or text", body["error"])

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Senior engineer with ten years of Go experience."))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/api/resume/analyze", &buf)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	resp, body = s.send(t, req)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	analysis, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, analysis)
}

func TestRouter_Analytics(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/api/analytics?metric=devices", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "devices")

	resp, body = s.do(t, nethttp.MethodGet, "/api/analytics?period=7d&metric=visitors", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func TestRouter_Contact(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/api/contact", "", map[string]string{"name": "Ada"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Name, email, and message are required", body["error"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/contact", "", map[string]string{"name": "Ada", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email format", body["error"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/contact", "", map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hello there"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, service.ContactThankYouMsg, body["message"])
}

func TestRouter_CppTools(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "lint"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Code is required", body["error"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "explode", "code": "int x;"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action", body["error"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "format", "code": "if(x){return 1;}"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body["formatted"], "if (x) {")

	resp, body = s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "lint", "code": "int main() {\n  return 0;\n}\n"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "diagnostics")
	assert.Contains(t, body, "summary")

	resp, body = s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "analyze", "code": "int f(int n) { return n; }"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "analysis")

	resp, body = s.do(t, nethttp.MethodPost, "/api/cpp-tools", "", map[string]string{"action": "compile", "code": "int main() {\n  return 0;\n}\n"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestRouter_Tasks(t *testing.T) {
	s := newTestServer(t)

	_, body := s.do(t, nethttp.MethodGet, "/api/tasks", "", nil)
	assert.Len(t, body["tasks"], 4)

	resp, body := s.do(t, nethttp.MethodPost, "/api/tasks", "", map[string]string{"title": "x"})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", body["error"])

	token := s.signUp(t, "tasks@example.com")

	_, body = s.do(t, nethttp.MethodGet, "/api/tasks", token, nil)
	assert.Empty(t, body["tasks"])

	resp, body = s.do(t, nethttp.MethodPost, "/api/tasks", token, map[string]any{"title": "Write docs", "tags": []string{"docs"}})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	task := body["task"].(map[string]any)
	assert.Equal(t, "todo", task["status"])
	assert.Equal(t, "medium", task["priority"])
	id := task["id"].(string)

	resp, body = s.do(t, nethttp.MethodPut, "/api/tasks", token, map[string]any{"id": id, "status": "done"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "done", body["task"].(map[string]any)["status"])

	resp, body = s.do(t, nethttp.MethodPut, "/api/tasks", token, map[string]any{"id": "missing", "status": "done"})
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", body["error"])

	resp, body = s.do(t, nethttp.MethodDelete, "/api/tasks?id="+id, token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	_, body = s.do(t, nethttp.MethodGet, "/api/tasks", token, nil)
	assert.Empty(t, body["tasks"])
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	userToken := s.signUp(t, "user@example.com")
	adminToken := s.adminToken(t)

	resp, _ := s.do(t, nethttp.MethodGet, "/api/admin/contacts", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(t, nethttp.MethodGet, "/api/admin/contacts", userToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	s.do(t, nethttp.MethodPost, "/api/contact", "", map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hi"})

	resp, body = s.do(t, nethttp.MethodGet, "/api/admin/contacts", adminToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Len(t, body["messages"], 1)

	resp, body = s.do(t, nethttp.MethodGet, "/api/admin/metrics", adminToken, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "requests")
	assert.Contains(t, body, "errors")

	resp, _ = s.do(t, nethttp.MethodGet, "/api/admin/contacts?limit=9223372036854775807", adminToken, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRouter_UnknownPathsShareMetricsKey(t *testing.T) {
	s := newTestServer(t)

	s.do(t, nethttp.MethodGet, "/api/products", "", nil)
	for i := range 50 {
		resp, _ := s.do(t, nethttp.MethodGet, "/nope/"+strconv.Itoa(i), "", nil)
		require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	}

	snap := s.metrics.Snapshot()
	assert.Len(t, snap.Requests, 2)
	assert.Equal(t, int64(50), snap.Requests[observability.UnmatchedRoute+"|GET|404"])
	assert.Equal(t, int64(1), snap.Requests["/api/products|GET|200"])
	assert.Len(t, snap.Errors, 1)
	assert.Equal(t, int64(50), snap.Errors[observability.UnmatchedRoute+"|GET|NOT_FOUND"])
}

func TestRouter_UnknownRouteAndBadBody(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	req := httptest.NewRequest(nethttp.MethodPost, "/api/contact", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body = s.send(t, req)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid payload", body["error"])
}
