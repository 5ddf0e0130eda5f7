package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type routerEnv struct {
	engine *gin.Engine
	users  *memUserRepo
	blog   *memBlogRepo
	images *memImageStore
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := Config{
		Port:     "3000",
		BaseURL:  "http://localhost:3000",
		TokenTTL: time.Hour,
	}
	users := newMemUserRepo()
	hasher := NewPasswordHasher(4)
	tokens := NewTokenIssuer(testSecret, cfg.TokenTTL)
	auth := NewAuthService(users, hasher, tokens)

	blog := &memBlogRepo{}
	images := newMemImageStore()
	repos := Repositories{
		Headers: &memHeaderRepo{},
		About:   &memAboutRepo{},
		Footers: &memFooterRepo{},
		Blog:    blog,
	}
	return &routerEnv{
		engine: NewRouter(cfg, auth, tokens, users, repos, images, nil),
		users:  users,
		blog:   blog,
		images: images,
	}
}

func (e *routerEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *routerEnv) registerAndLogin(t *testing.T) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code, resp.Error.Message
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "alice", created.Username)
	require.NotContains(t, w.Body.String(), "password")

	// Same username again conflicts.
	w = env.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusConflict, w.Code)
	code, _ := errorCode(t, w)
	require.Equal(t, "CONFLICT", code)

	// Login with the right password yields a token the protected routes accept.
	w = env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = env.do(http.MethodGet, "/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, created.ID, me.ID)

	// Wrong password and unknown user produce the identical response.
	wrong := env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "nope"})
	unknown := env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "ghost", "password": "s3cret"})
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, wrong.Code, unknown.Code)
	require.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	env := newRouterEnv(t)

	for _, body := range []gin.H{
		{"username": "", "password": "s3cret"},
		{"username": "alice", "password": ""},
		{"username": "alice", "password": "short"},
	} {
		w := env.do(http.MethodPost, "/api/v1/auth/register", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		code, msg := errorCode(t, w)
		require.Equal(t, "VALIDATION_ERROR", code)
		require.Equal(t, "Campos obrigatórios estão faltando", msg)
	}

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	_, msg := errorCode(t, w)
	require.Equal(t, "JSON inválido", msg)
}

func TestLoginStoreUnavailable(t *testing.T) {
	env := newRouterEnv(t)
	env.registerAndLogin(t)

	env.users.failWith = errDBDown
	w := env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	code, _ := errorCode(t, w)
	require.Equal(t, "AUTHENTICATION_UNAVAILABLE", code)
}

func TestChangePasswordAndDeleteAccount(t *testing.T) {
	env := newRouterEnv(t)
	token := env.registerAndLogin(t)

	w := env.do(http.MethodPut, "/api/v1/auth/password", token, gin.H{"currentPassword": "nope", "newPassword": "n3wpass"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPut, "/api/v1/auth/password", token, gin.H{"currentPassword": "s3cret", "newPassword": "n3wpass"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "alice", "password": "n3wpass"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Tokens for deleted accounts stop working.
	w = env.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestHeaderCRUD(t *testing.T) {
	env := newRouterEnv(t)
	token := env.registerAndLogin(t)

	// Public read works without a token.
	w := env.do(http.MethodGet, "/api/v1/header", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	header := gin.H{
		"phone":       "(11) 99999-0000",
		"whatsapp":    "(11) 99999-0000",
		"email":       "contato@nutricare.com.br",
		"logo":        "/images/logo.png",
		"socialLinks": []string{"https://instagram.com/nutricare"},
	}

	// Writes require auth.
	w = env.do(http.MethodPost, "/api/v1/header", "", header)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	code, _ := errorCode(t, w)
	require.Equal(t, "MISSING_TOKEN", code)

	w = env.do(http.MethodPost, "/api/v1/header", token, header)
	require.Equal(t, http.StatusCreated, w.Code)
	var created Header
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// Missing required field.
	w = env.do(http.MethodPost, "/api/v1/header", token, gin.H{"phone": "(11) 1234-5678"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	_, msg := errorCode(t, w)
	require.Equal(t, "Campos obrigatórios estão faltando", msg)

	// Update and read back.
	header["email"] = "novo@nutricare.com.br"
	w = env.do(http.MethodPut, fmt.Sprintf("/api/v1/header/%d", created.ID), token, header)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/header", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []Header
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "novo@nutricare.com.br", list[0].Email)

	// Update of a missing id is a 404; delete is idempotent.
	w = env.do(http.MethodPut, "/api/v1/header/999", token, header)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/v1/header/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(http.MethodDelete, fmt.Sprintf("/api/v1/header/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Non-numeric id.
	w = env.do(http.MethodPut, "/api/v1/header/abc", token, header)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlogPagination(t *testing.T) {
	env := newRouterEnv(t)
	token := env.registerAndLogin(t)

	for i := 1; i <= 5; i++ {
		w := env.do(http.MethodPost, "/api/v1/blog", token, gin.H{
			"title":   fmt.Sprintf("Post %d", i),
			"summary": "resumo",
			"body":    "conteúdo",
			"author":  "Dra. Ana",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/api/v1/blog?page=2&per_page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items      []BlogPost `json:"items"`
		Page       int        `json:"page"`
		PerPage    int        `json:"per_page"`
		TotalItems int        `json:"total_items"`
		TotalPages int        `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 2)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 5, page.TotalItems)
	require.Equal(t, 3, page.TotalPages)

	// A page past the end is empty, not an error.
	w = env.do(http.MethodGet, "/api/v1/blog?page=9", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Empty(t, page.Items)

	// Bad pagination input.
	w = env.do(http.MethodGet, "/api/v1/blog?page=0", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodGet, "/api/v1/blog?per_page=x", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Single post fetch.
	w = env.do(http.MethodGet, "/api/v1/blog/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/api/v1/blog/999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageUploadAndServe(t *testing.T) {
	env := newRouterEnv(t)
	token := env.registerAndLogin(t)

	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	w := env.do(http.MethodPost, "/api/v1/images", token, gin.H{"data": payload})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID          string `json:"id"`
		ContentType string `json:"contentType"`
		URL         string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "image/png", created.ContentType)
	require.Contains(t, created.URL, "/api/v1/images/"+created.ID)

	// Serving is public and returns the original bytes.
	w = env.do(http.MethodGet, "/api/v1/images/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, raw, w.Body.Bytes())

	w = env.do(http.MethodGet, "/api/v1/images/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Invalid base64 payload.
	w = env.do(http.MethodPost, "/api/v1/images", token, gin.H{"data": "data:image/png;base64,@@@"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/images/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(http.MethodGet, "/api/v1/images/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSForbiddenOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := Config{
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"https://nutricare.com.br"},
	}
	users := newMemUserRepo()
	tokens := NewTokenIssuer(testSecret, cfg.TokenTTL)
	auth := NewAuthService(users, NewPasswordHasher(4), tokens)
	r := NewRouter(cfg, auth, tokens, users, Repositories{Headers: &memHeaderRepo{}}, newMemImageStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/header", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/header", nil)
	req.Header.Set("Origin", "https://nutricare.com.br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://nutricare.com.br", w.Header().Get("Access-Control-Allow-Origin"))
}
