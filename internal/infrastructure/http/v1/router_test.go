package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrote/internal/domain/auth"
	"abarrote/internal/infrastructure/http/v1/handlers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUserRepo struct {
	users map[string]auth.User
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) Create(_ context.Context, u auth.User) (auth.User, error) {
	u.IDUsuario = int64(len(r.users) + 1)
	r.users[u.Username] = u
	return u, nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func testRouter() *gin.Engine {
	authSvc := auth.NewService(
		&memUserRepo{users: make(map[string]auth.User)},
		auth.NewTokenService("test-secret", time.Hour),
	)
	return NewRouter(authSvc, stubPinger{}, Handlers{
		Auth: handlers.NewAuthHandler(authSvc),
	})
}

func doJSON(router *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	rec := doJSON(testRouter(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestReadinessReflectsDatabase(t *testing.T) {
	authSvc := auth.NewService(
		&memUserRepo{users: make(map[string]auth.User)},
		auth.NewTokenService("test-secret", time.Hour),
	)

	rec := doJSON(NewRouter(authSvc, stubPinger{}, Handlers{}), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	down := stubPinger{err: errors.New("dial tcp: connection refused")}
	rec = doJSON(NewRouter(authSvc, down, Handlers{}), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	rec := doJSON(testRouter(), http.MethodGet, "/api/no-such-route", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Ruta no encontrada"}`, rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter()

	paths := []string{
		"/api/insumos",
		"/api/productos",
		"/api/cadenas",
		"/api/ventas",
		"/api/costos",
		"/api/stock-insumos",
		"/api/auditoria/producto/1",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := doJSON(router, http.MethodGet, path, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Token no proporcionado"}`, rec.Body.String())
		})
	}
}

func TestStockCantidadRoutesUsePatch(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/api/stock-insumos/1", "/api/stock-productos/1"} {
		t.Run(path, func(t *testing.T) {
			// PATCH is mounted: the request reaches the auth gate.
			rec := doJSON(router, http.MethodPatch, path, `{"cantidad":5}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			// PUT is not: it falls through to the 404 envelope.
			rec = doJSON(router, http.MethodPut, path, `{"cantidad":5}`)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Ruta no encontrada"}`, rec.Body.String())
		})
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router := testRouter()

	rec := doJSON(router, http.MethodPost, "/api/auth/register",
		`{"username":"admin","password":"hunter22","nombre":"Administrador"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "admin", created.Data.Username)
	assert.Empty(t, created.Data.Password)

	rec = doJSON(router, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.True(t, login.Success)
	assert.NotEmpty(t, login.Data.Token)
}

func TestLoginBadCredentialsEnvelope(t *testing.T) {
	router := testRouter()

	rec := doJSON(router, http.MethodPost, "/api/auth/login",
		`{"username":"ghost","password":"nope123"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Credenciales inválidas"}`, rec.Body.String())
}

func TestRegisterValidationEnvelope(t *testing.T) {
	router := testRouter()

	rec := doJSON(router, http.MethodPost, "/api/auth/register",
		`{"username":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Datos de entrada inválidos"}`, rec.Body.String())
}
