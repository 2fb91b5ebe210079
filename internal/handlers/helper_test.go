package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/router"
	"inkwell/internal/slug"
)

// newTestServer wires the real routes against a fresh in-memory database.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		PostsPerPage:  3,
		SessionSecret: "test-secret",
	}

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inkwell_session", store))
	r.HTMLRender = testTemplates()
	router.RegisterRoutes(r, gdb, cfg)

	return r, gdb
}

// testTemplates registers string stand-ins for the real views so handler
// output can be asserted without the web/ directory.
func testTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromString("post/list.html",
		`{{range .Flashes}}[{{.}}]{{end}}title={{.Title}};posts={{range .Posts}}{{.Title}}|{{end}};prev={{.Pagination.PrevURL}};next={{.Pagination.NextURL}};tags={{range .Tags}}{{.Name}},{{end}}`)
	r.AddFromString("post/detail.html",
		`{{range .Flashes}}[{{.}}]{{end}}post={{.Post.Title}};comments={{range .Comments}}{{.Floor}}:{{.Body}}|{{end}};errors={{range $k, $v := .FieldErrors}}{{$k}}={{$v}};{{end}}`)
	r.AddFromString("post/create.html",
		`{{range .Flashes}}[{{.}}]{{end}}create;tags={{range .Tags}}{{.Name}},{{end}};errors={{range $k, $v := .FieldErrors}}{{$k}}={{$v}};{{end}}`)
	r.AddFromString("user/account.html",
		`account={{.User.Username}};posts={{.PostCount}};comments={{.CommentCount}}`)
	r.AddFromString("auth/login.html", `login;error={{.Error}}`)
	r.AddFromString("auth/register.html", `register;error={{.Error}}`)
	r.AddFromString("error.html", `error={{.Error}}`)
	return r
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signup registers a fresh user through the real flow and returns the
// session cookies of the logged-in user.
func signup(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := postForm(r, "/signup", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code, "signup should redirect: %s", w.Body.String())
	return w.Result().Cookies()
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func seedTag(t *testing.T, gdb *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug.Slugify(name)}
	require.NoError(t, gdb.Create(&tag).Error)
	return tag
}

func seedPost(t *testing.T, gdb *gorm.DB, user models.User, title string, createdAt time.Time, tags ...models.Tag) models.Post {
	t.Helper()
	post := models.Post{
		Title:     title,
		Slug:      slug.Slugify(title),
		Body:      "body of " + title,
		UserID:    user.ID,
		Tags:      tags,
		CreatedAt: createdAt,
	}
	require.NoError(t, gdb.Create(&post).Error)
	return post
}
