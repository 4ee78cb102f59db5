package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/database"
	"github.com/yukikurage/knowledge-share-api/internal/middleware"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/repository"
	"github.com/yukikurage/knowledge-share-api/internal/services"
	"github.com/yukikurage/knowledge-share-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	validationRepo := repository.NewValidationRepository(db)

	authService := services.NewAuthService(userRepo)
	authHandler := NewAuthHandler(authService)
	itemHandler := NewItemHandler(services.NewItemService(itemRepo, store))
	validationHandler := NewValidationHandler(services.NewValidationService(itemRepo, validationRepo))

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/static/uploads/:filename", itemHandler.ServeUpload)

	api := r.Group("/api")
	api.GET("/check-auth", authHandler.CheckAuth)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(authService))
	protected.POST("/upload", itemHandler.Upload)
	protected.GET("/search", itemHandler.Search)
	protected.GET("/recommendations", itemHandler.Recommendations)
	protected.GET("/validate", validationHandler.ListPending)
	protected.POST("/validate", middleware.RequireRole(models.RoleTeamLeader), validationHandler.Validate)
	protected.GET("/items/:id/validations", validationHandler.History)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return handlerTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

// testClient replays session cookies between requests like a browser would
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (env handlerTestEnv) newClient(t *testing.T) *testClient {
	return &testClient{t: t, router: env.router, cookies: map[string]*http.Cookie{}}
}

// registeredClient returns a client whose session belongs to a freshly registered user
func (env handlerTestEnv) registeredClient(t *testing.T, username, role string) *testClient {
	t.Helper()
	client := env.newClient(t)
	w := client.postJSON("/api/register", map[string]string{
		"username": username,
		"password": "supersecret",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return client
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) postJSON(path string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(c.t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// upload posts a multipart form; an empty fileName sends no file part
func (c *testClient) upload(fields map[string]string, fileName, content string) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(c.t, err)
		_, err = part.Write([]byte(content))
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
