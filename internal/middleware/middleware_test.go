package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/services"
)

type stubUsers map[uint64]*models.User

func (s stubUsers) GetUser(_ context.Context, id uint64) (*models.User, error) {
	if user, ok := s[id]; ok {
		return user, nil
	}
	return nil, services.ErrUserNotFound
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newSessionRouter exposes /login/:id to seed the session and /private behind the given handlers
func newSessionRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, id)
		if err := session.Save(); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/private", handlers...)
	return r
}

func loginCookies(t *testing.T, r *gin.Engine, id string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func getPrivate(r *gin.Engine, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Username: "member", Role: models.RoleTeamMember},
	}
	r := newSessionRouter(RequireAuth(users))

	w := getPrivate(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = getPrivate(r, loginCookies(t, r, "1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "member")

	// session for a user that does not exist
	w = getPrivate(r, loginCookies(t, r, "9"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Username: "member", Role: models.RoleTeamMember},
		2: {ID: 2, Username: "leader", Role: models.RoleTeamLeader},
	}
	r := newSessionRouter(RequireAuth(users), RequireRole(models.RoleTeamLeader))

	w := getPrivate(r, loginCookies(t, r, "1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = getPrivate(r, loginCookies(t, r, "2"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WithoutUser(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/validate", nil)

	RequireRole(models.RoleTeamLeader)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	assert.Len(t, generated, 32)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Header().Get(constants.HeaderRequestID))

	for _, bad := range []string{strings.Repeat("a", 65), "id with spaces", "evil<script>", "a;b"} {
		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(constants.HeaderRequestID, bad)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get(constants.HeaderRequestID)
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 32, bad)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, strings.Repeat("b", 64))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, strings.Repeat("b", 64), w.Header().Get(constants.HeaderRequestID))
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, 42)
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	c.Set(constants.ContextKeyUserID, "42")
	_, ok = GetUserID(c)
	assert.False(t, ok)
}

// saveFailingStore decodes existing cookies but cannot persist changes
type saveFailingStore struct {
	cookie.Store
}

func (saveFailingStore) Save(*http.Request, http.ResponseWriter, *gsessions.Session) error {
	return errors.New("session store unavailable")
}

func TestRequireAuth_LogsFailedStaleSessionClear(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = original
	})

	cookies := loginCookies(t, newSessionRouter(), "9")

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, saveFailingStore{cookie.NewStore([]byte("secret"))}))
	r.GET("/private", RequireAuth(stubUsers{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := getPrivate(r, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, buf.String(), "failed to clear stale session")
	assert.Contains(t, buf.String(), "session store unavailable")
}
